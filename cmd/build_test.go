package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"liu.dev/pkg/liu/internal/config"
	"liu.dev/pkg/liu/internal/domain"
	m "liu.dev/pkg/liu/internal/model"
)

func testConfig() *config.Config {
	return config.New(map[config.Key]string{config.KeyCC: "gcc"})
}

func TestBuildCmd_BuildsThenRunsTests(t *testing.T) {
	for _, name := range []string{"build", "b"} {
		t.Run(name, func(t *testing.T) {
			mockWorkflow := useWorkflow(t)
			cfg := testConfig()

			mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(cfg, nil).Once()
			mockWorkflow.On("Build", mock.Anything, domain.BuildArgs{Config: cfg, Jobs: 1}).Return(nil).Once()
			mockWorkflow.On("Test", mock.Anything).Return(nil).Once()

			cmd, _ := newTestRootCmd(t)
			cmd.SetArgs(withArgs(t, name))

			require.NoError(t, cmd.Execute())
		})
	}
}

func TestBuildCmd_Flags(t *testing.T) {
	mockWorkflow := useWorkflow(t)
	cfg := testConfig()

	mockWorkflow.On("LoadConfig", mock.Anything, m.Path("project.liu")).Return(cfg, nil)
	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Config == cfg &&
			args.Jobs == 4 &&
			args.LedgerLimit == 8192 &&
			args.Report == m.Path("build.yaml")
	})).Return(nil)
	mockWorkflow.On("Test", mock.Anything).Return(nil)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t,
		"build",
		"--config", "project.liu",
		"-j", "4",
		"--ledger-limit", "8192",
		"--report", "build.yaml",
	))

	require.NoError(t, cmd.Execute())
}

func TestBuildCmd_JobsFromEnv(t *testing.T) {
	t.Setenv("LIU_BUILD_JOBS", "3")

	mockWorkflow := useWorkflow(t)
	cfg := testConfig()

	mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(cfg, nil)
	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Jobs == 3
	})).Return(nil)
	mockWorkflow.On("Test", mock.Anything).Return(nil)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t, "build"))

	require.NoError(t, cmd.Execute())
}

func TestBuildCmd_FailureSkipsTests(t *testing.T) {
	mockWorkflow := useWorkflow(t)
	cfg := testConfig()

	mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(cfg, nil)
	mockWorkflow.On("Build", mock.Anything, mock.Anything).Return(domain.ErrCompileFailed)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t, "build"))

	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrCompileFailed)
	mockWorkflow.AssertNotCalled(t, "Test", mock.Anything)
}

func TestBuildCmd_ConfigErrorStops(t *testing.T) {
	mockWorkflow := useWorkflow(t)
	redefinition := &config.RedefinitionError{Key: config.KeyCC, Line: 2}

	mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(nil, redefinition)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t, "build"))

	err := cmd.Execute()

	var target *config.RedefinitionError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, config.KeyCC, target.Key)
	mockWorkflow.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
}

func TestBuildCmd_RejectsArgs(t *testing.T) {
	useWorkflow(t)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t, "build", "extra"))

	require.Error(t, cmd.Execute())
}

func TestStubCommands(t *testing.T) {
	tests := []struct {
		args  []string
		build bool
		step  string
	}{
		{[]string{"test"}, false, "Test"},
		{[]string{"t"}, false, "Test"},
		{[]string{"debug"}, true, "Debug"},
		{[]string{"d"}, true, "Debug"},
		{[]string{"run"}, true, "Run"},
		{[]string{"r"}, true, "Run"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			mockWorkflow := useWorkflow(t)
			cfg := testConfig()

			mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(cfg, nil)
			if tt.build {
				mockWorkflow.On("Build", mock.Anything, mock.Anything).Return(nil).Once()
			}
			mockWorkflow.On(tt.step, mock.Anything).Return(nil).Once()

			cmd, _ := newTestRootCmd(t)
			cmd.SetArgs(withArgs(t, tt.args...))

			require.NoError(t, cmd.Execute())

			if !tt.build {
				mockWorkflow.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRunCmd_BuildFailureSkipsRun(t *testing.T) {
	mockWorkflow := useWorkflow(t)
	failure := errors.New("link failed")

	mockWorkflow.On("LoadConfig", mock.Anything, m.Path(".liu")).Return(testConfig(), nil)
	mockWorkflow.On("Build", mock.Anything, mock.Anything).Return(failure)

	cmd, _ := newTestRootCmd(t)
	cmd.SetArgs(withArgs(t, "run"))

	require.ErrorIs(t, cmd.Execute(), failure)
	mockWorkflow.AssertNotCalled(t, "Run", mock.Anything)
}
