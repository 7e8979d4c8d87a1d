package commands

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"local-auth-service/cmd/api/di"
	"local-auth-service/internal/adapter/storage/memory"
	"local-auth-service/internal/config"
	"local-auth-service/pkg/kvstore"
)

// device simulates repeated CLI invocations against one persistent store.
type device struct {
	t     *testing.T
	cfg   *config.Config
	store kvstore.Store
}

func newDevice(t *testing.T) *device {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Driver = config.DriverMemory
	return &device{t: t, cfg: cfg, store: memory.New()}
}

func (d *device) run(args ...string) (string, error) {
	build := func(ctx context.Context, opts Options) (*di.Container, error) {
		return di.NewWithStore(d.cfg, zaptest.NewLogger(d.t), d.store), nil
	}

	var out bytes.Buffer
	err := Execute(context.Background(), build, args, &out, &out)
	return out.String(), err
}

func TestCLI_SignupWhoamiLogout(t *testing.T) {
	d := newDevice(t)

	out, err := d.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = d.run("signup", "--name", "Ana", "--email", "ana@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed up as Ana <ana@example.com>")

	out, err = d.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@example.com>")

	out, err = d.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	out, err = d.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = d.run("login", "--email", "ana@example.com", "--password", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ana")
}

func TestCLI_DuplicateSignup(t *testing.T) {
	d := newDevice(t)

	_, err := d.run("signup", "--name", "Ana", "--email", "ana@example.com", "--password", "pw")
	require.NoError(t, err)

	_, err = d.run("signup", "--name", "Other", "--email", "ana@example.com", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCLI_LoginUnknownEmail(t *testing.T) {
	d := newDevice(t)

	_, err := d.run("login", "--email", "ghost@example.com", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestCLI_SignupRequiresFlags(t *testing.T) {
	d := newDevice(t)

	_, err := d.run("signup", "--email", "ana@example.com")
	require.Error(t, err)
}

func TestCLI_ClosesContainerAfterFailedCommand(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "cli.db")

	var built *di.Container
	build := func(ctx context.Context, opts Options) (*di.Container, error) {
		c, err := di.NewContainer(ctx, cfg, zaptest.NewLogger(t))
		built = c
		return c, err
	}

	err = Execute(context.Background(), build, []string{"login", "--email", "ghost@example.com", "--password", "pw"}, io.Discard, io.Discard)
	require.Error(t, err)

	require.NotNil(t, built)
	sqlDB, err := built.DB.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}

func TestCLI_Theme(t *testing.T) {
	d := newDevice(t)

	out, err := d.run("theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = d.run("theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = d.run("theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = d.run("theme", "set", "light")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = d.run("theme", "set", "sepia")
	require.Error(t, err)
}
