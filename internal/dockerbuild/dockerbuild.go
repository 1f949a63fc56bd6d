// Package dockerbuild builds the high-scores backend and frontend images.
package dockerbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/termstyle"
)

// EnvLocal tags images without a registry prefix.
const EnvLocal = "local"

// RegistryEnv names the variable holding the registry for non-local builds.
const RegistryEnv = "ACR_REGISTRY"

var ErrRegistryRequired = errors.New("dockerbuild: " + RegistryEnv + " environment variable not set")

// Image is one docker build: a context directory under the project root
// and the tag to apply.
type Image struct {
	Label string // shown in progress lines
	Dir   string
	Tag   string
}

// Plan is the ordered set of images for one environment.
type Plan struct {
	Env     string
	Version string
	Images  []Image
}

// Backend and Frontend are the images' tags within a plan.
func (p Plan) Backend() string  { return p.Images[0].Tag }
func (p Plan) Frontend() string { return p.Images[1].Tag }

// NewPlan decides the image tags. Local builds use bare names; every other
// environment prefixes the registry, which must then be set.
func NewPlan(env, version, registry string) (Plan, error) {
	if env == "" {
		env = EnvLocal
	}
	if version == "" {
		version = "latest"
	}
	prefix := ""
	if env != EnvLocal {
		registry = strings.TrimSuffix(strings.TrimSpace(registry), "/")
		if registry == "" {
			return Plan{}, ErrRegistryRequired
		}
		prefix = registry + "/"
	}
	return Plan{
		Env:     env,
		Version: version,
		Images: []Image{
			{Label: "backend (Spring Boot)", Dir: "java-spring-boot-backend", Tag: prefix + "highscores-backend:" + version},
			{Label: "frontend (React + Nginx)", Dir: "react-frontend", Tag: prefix + "highscores-frontend:" + version},
		},
	}, nil
}

// Runner executes a command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// Builder runs a plan against a project checkout.
type Builder struct {
	Root   string // project root holding the image directories
	Runner Runner
	Out    io.Writer
	Log    *zap.Logger
}

// Run builds each image in order and stops at the first failure.
func (b *Builder) Run(ctx context.Context, plan Plan) error {
	log := logging.OrNop(b.Log)
	out := b.Out
	if out == nil {
		out = io.Discard
	}

	termstyle.Header(out, "High Scores Demo - Docker Image Builder")
	fmt.Fprintf(out, "Environment: %s\nVersion: %s\n\n", plan.Env, plan.Version)

	for i, img := range plan.Images {
		fmt.Fprintf(out, "[%d/%d] Building %s...\n", i+1, len(plan.Images), img.Label)
		dir := filepath.Join(b.Root, img.Dir)
		log.Debug("docker build", zap.String("dir", dir), zap.String("tag", img.Tag))
		if err := b.Runner.Run(ctx, dir, "docker", "build", "-t", img.Tag, "."); err != nil {
			termstyle.Fail(out, "build failed: %s", img.Tag)
			return fmt.Errorf("dockerbuild: build %s: %w", img.Tag, err)
		}
		termstyle.OK(out, "image built: %s", img.Tag)
	}

	fmt.Fprintln(out)
	termstyle.OK(out, "Build completed successfully!")
	fmt.Fprintln(out)
	writeNextSteps(out, plan)
	return nil
}

func writeNextSteps(w io.Writer, plan Plan) {
	if plan.Env == EnvLocal {
		termstyle.Header(w, "Next steps for local deployment:")
		fmt.Fprint(w, "  1. Ensure Rancher Desktop is running\n"+
			"  2. cd terraform/environments/local\n"+
			"  3. terraform init\n"+
			"  4. terraform apply\n")
		return
	}
	termstyle.Header(w, "Next steps for Azure deployment:")
	fmt.Fprintf(w, "  1. Login to ACR:\n"+
		"     az acr login --name <registry-name>\n"+
		"  2. Push images:\n"+
		"     docker push %[1]s\n"+
		"     docker push %[2]s\n"+
		"  3. Deploy with Terraform:\n"+
		"     cd terraform/environments/azure\n"+
		"     terraform apply -var=\"backend_image=%[1]s\" -var=\"frontend_image=%[2]s\"\n",
		plan.Backend(), plan.Frontend())
}
