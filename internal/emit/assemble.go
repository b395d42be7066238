package emit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Assemble takes runtime assembly source and produces a linkable object file
func Assemble(assembly string, objPath string) error {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "loomrt-assemble-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Write assembly to file
	asmPath := filepath.Join(tmpDir, "runtime.s")
	if err := os.WriteFile(asmPath, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("failed to write assembly: %v", err)
	}

	// Assemble: as runtime.s -o <objPath>
	cmd := exec.Command("as", asmPath, "-o", objPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("assembler failed: %v\n%s", err, output)
	}

	return nil
}
