package commands_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/cmd/quack/commands"
	"go.trai.ch/quack/internal/adapters/config"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/adapters/telemetry"
	"go.trai.ch/quack/internal/app"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports/mocks"
	"go.trai.ch/quack/internal/engine/scheduler"
	"go.trai.ch/quack/internal/ui/output"
	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	cli    *commands.CLI
	loader *mocks.MockSpecLoader
	store  *mocks.MockCacheStore
	fp     *mocks.MockFingerprinter
	arch   *mocks.MockArchiver
	out    *bytes.Buffer
}

func setupCLI(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &cliFixture{
		loader: mocks.NewMockSpecLoader(ctrl),
		store:  mocks.NewMockCacheStore(ctrl),
		fp:     mocks.NewMockFingerprinter(ctrl),
		arch:   mocks.NewMockArchiver(ctrl),
		out:    &bytes.Buffer{},
	}
	runner := mocks.NewMockCommandRunner(ctrl)
	stores := mocks.NewMockStoreSelector(ctrl)
	stores.EXPECT().ForMode(gomock.Any()).Return(f.store, nil).AnyTimes()

	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	sched := scheduler.NewScheduler(runner, f.fp, f.arch, stores, telemetry.NewNoop(), log)
	a := app.New(f.loader, sched, runner, &config.Settings{Cache: "local", Jobs: 1}, telemetry.NewNoop(), log).
		WithPrinter(output.NewPrinter(f.out))

	f.cli = commands.New(a)
	return f
}

func projectWithTarget(t *testing.T) *domain.Project {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(&domain.Target{Name: "api", Build: "make api"}))
	require.NoError(t, g.Validate())
	return &domain.Project{AppName: "shop", Graph: g}
}

func TestRunCommand_BuildsTarget(t *testing.T) {
	f := setupCLI(t)
	f.loader.EXPECT().Load(".").Return(projectWithTarget(t), nil)
	f.fp.EXPECT().Checksum(gomock.Any(), gomock.Any(), gomock.Any()).Return("sum", nil)
	f.store.EXPECT().Lookup(gomock.Any(), gomock.Any()).
		Return(&domain.CacheEntry{ArchivePath: "/cache/api.tar.gz"}, nil)
	f.arch.EXPECT().Unpack(gomock.Any(), gomock.Any()).Return(nil)

	f.cli.SetArgs([]string{"run", "api"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "api")
}

func TestRunCommand_NoArgsShowsHelp(t *testing.T) {
	f := setupCLI(t)

	f.cli.SetArgs([]string{"run"})
	require.NoError(t, f.cli.Execute(context.Background()), "bare run prints usage without failing")
}

func TestRunCommand_InvalidCacheFlag(t *testing.T) {
	f := setupCLI(t)
	f.loader.EXPECT().Load(".").Return(projectWithTarget(t), nil)

	f.cli.SetArgs([]string{"run", "api", "--cache", "remote"})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidCacheMode)
}

func TestListCommand(t *testing.T) {
	f := setupCLI(t)
	f.loader.EXPECT().Load(".").Return(projectWithTarget(t), nil)

	f.cli.SetArgs([]string{"list"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "api")
}

func TestVersionCommand(t *testing.T) {
	f := setupCLI(t)

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
}
