package dockerbuild

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	args []string
}

type fakeRunner struct {
	calls  []call
	failAt int // 1-based call to fail; 0 never fails
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, call{dir: dir, args: append([]string{name}, args...)})
	if len(f.calls) == f.failAt {
		return errors.New("exit status 1")
	}
	return nil
}

func TestNewPlanLocal(t *testing.T) {
	plan, err := NewPlan("", "", "ignored.azurecr.io")
	require.NoError(t, err)
	assert.Equal(t, EnvLocal, plan.Env)
	assert.Equal(t, "highscores-backend:latest", plan.Backend())
	assert.Equal(t, "highscores-frontend:latest", plan.Frontend())
}

func TestNewPlanRegistry(t *testing.T) {
	plan, err := NewPlan("azure", "1.2.0", "myregistry.azurecr.io/")
	require.NoError(t, err)
	assert.Equal(t, "myregistry.azurecr.io/highscores-backend:1.2.0", plan.Backend())
	assert.Equal(t, "myregistry.azurecr.io/highscores-frontend:1.2.0", plan.Frontend())

	_, err = NewPlan("azure", "1.2.0", " ")
	assert.ErrorIs(t, err, ErrRegistryRequired)
}

func TestBuilderRunsInOrder(t *testing.T) {
	plan, err := NewPlan("azure", "v3", "reg.io")
	require.NoError(t, err)

	runner := &fakeRunner{}
	var out bytes.Buffer
	b := &Builder{Root: "/src", Runner: runner, Out: &out}
	require.NoError(t, b.Run(context.Background(), plan))

	assert.Equal(t, []call{
		{dir: filepath.Join("/src", "java-spring-boot-backend"), args: []string{"docker", "build", "-t", "reg.io/highscores-backend:v3", "."}},
		{dir: filepath.Join("/src", "react-frontend"), args: []string{"docker", "build", "-t", "reg.io/highscores-frontend:v3", "."}},
	}, runner.calls)
	assert.Contains(t, out.String(), "[2/2] Building frontend (React + Nginx)...")
	assert.Contains(t, out.String(), "Next steps for Azure deployment:")
	assert.Contains(t, out.String(), `terraform apply -var="backend_image=reg.io/highscores-backend:v3" -var="frontend_image=reg.io/highscores-frontend:v3"`)
}

func TestBuilderStopsAtFirstFailure(t *testing.T) {
	plan, err := NewPlan(EnvLocal, "dev", "")
	require.NoError(t, err)

	runner := &fakeRunner{failAt: 1}
	var out bytes.Buffer
	err = (&Builder{Runner: runner, Out: &out}).Run(context.Background(), plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "highscores-backend:dev")
	assert.Len(t, runner.calls, 1)
	assert.NotContains(t, out.String(), "Next steps")
}

func TestLocalNextSteps(t *testing.T) {
	plan, err := NewPlan(EnvLocal, "dev", "")
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, (&Builder{Runner: &fakeRunner{}, Out: &out}).Run(context.Background(), plan))
	assert.Contains(t, out.String(), "Next steps for local deployment:")
	assert.Contains(t, out.String(), "cd terraform/environments/local")
}
