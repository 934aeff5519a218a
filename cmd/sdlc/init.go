package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new sdlc project",
	Long: `Initialize a new sdlc project by creating a project manifest (sdlc.toml)
and a starter structure definition (module.sdl). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "sdlc-project"
	}

	manifestPath := filepath.Join(target, "sdlc.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	modulePath := filepath.Join(target, "module.sdl")
	createdModule := false
	if _, err := os.Stat(modulePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(modulePath, []byte(defaultModuleSDL(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write module.sdl: %w", err)
		}
		createdModule = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized sdlc project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - sdlc.toml\n")
	if createdModule {
		fmt.Fprintf(cmd.OutOrStdout(), "  - module.sdl\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  - module.sdl (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal sdlc.toml with a [build] table.
// `sdlc build` reads its align and languages keys as defaults when the
// matching flag is absent; the comments, member and suppress keys are not
// read.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# sdlc project manifest
[build]
align = 0
languages = ["c"]
comments = true
member = true
suppress = ""

# project: %s
`, name)
}

// defaultModuleSDL is the starter structure emitted by init: a module
// holding two constants and one two-member structure.
func defaultModuleSDL(name string) string {
	return fmt.Sprintf(`MODULE %s;

CONSTANT version_major EQUALS 1;
CONSTANT version_minor EQUALS 0;

AGGREGATE point STRUCTURE;
    x LONGWORD;
    y LONGWORD;
END point;

END_MODULE;
`, name)
}
