package adapter

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "liu.dev/pkg/liu/internal/model"
)

func decodeReport(data []byte) (*m.BuildReport, error) {
	var report m.BuildReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

func TestYAMLReportStore_Save(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewYAMLReportStore(fsys)

	report := &m.BuildReport{
		Units: []m.UnitReport{
			{
				Source:   "src/a.c",
				Object:   "obj/a.o",
				Command:  "gcc -o obj/a.o -c src/a.c",
				Status:   m.Succeeded,
				Duration: 1500 * time.Millisecond,
			},
			{
				Source: "src/b.c",
				Object: "obj/b.o",
				Status: m.Failed,
				Output: "src/b.c:1: error",
			},
		},
		Link:     m.LinkReport{Binary: "main", Status: m.Skipped},
		Duration: 2 * time.Second,
	}

	if err := store.SaveReport("reports/build.yaml", report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := afero.ReadFile(fsys, "reports/build.yaml")
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	for _, want := range []string{"status: ok", "status: failed", "status: skipped", "duration: 1.5s"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report does not contain %q:\n%s", want, data)
		}
	}

	loaded, err := decodeReport(data)
	if err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if len(loaded.Units) != 2 {
		t.Fatalf("loaded %d units, want 2", len(loaded.Units))
	}

	if loaded.Units[0].Status != m.Succeeded || loaded.Units[1].Status != m.Failed {
		t.Errorf("statuses = %v, %v", loaded.Units[0].Status, loaded.Units[1].Status)
	}

	if loaded.Units[0].Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v, want 1.5s", loaded.Units[0].Duration)
	}

	if loaded.Link.Status != m.Skipped || loaded.Link.Binary != "main" {
		t.Errorf("link = %+v", loaded.Link)
	}
}

func TestYAMLReportStore_SaveIntoMissingDirectoryOnReadOnlyFs(t *testing.T) {
	store := NewYAMLReportStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	if err := store.SaveReport("reports/build.yaml", &m.BuildReport{}); err == nil {
		t.Fatal("SaveReport() on a read-only filesystem succeeded")
	}
}

func TestStatus_UnknownName(t *testing.T) {
	_, err := decodeReport([]byte("units:\n  - status: exploded\n"))
	if err == nil || !strings.Contains(err.Error(), `unknown status "exploded"`) {
		t.Fatalf("decode error = %v, want unknown status", err)
	}
}
