package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "invoicedesk", cmd.Use)

	for _, name := range []string{"serve", "seed", "migrate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestSeedFlags(t *testing.T) {
	cmd := NewRootCommand()
	seedCmd, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	flag := seedCmd.Flags().Lookup("skip-migrate")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootOptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("ENVIRONMENT", "development")

	opts := &RootOptions{LogLevel: "debug", Environment: " production "}
	require.NoError(t, opts.apply())
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "production", os.Getenv("ENVIRONMENT"))

	require.NoError(t, (&RootOptions{}).apply())
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}

func TestServeGraphResolves(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(serveOptions()))
}
