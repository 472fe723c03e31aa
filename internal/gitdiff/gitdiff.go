package gitdiff

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/bamsammich/dirdiff/internal/engine"
)

// Config controls patch generation for differing directory pairs.
type Config struct {
	// Depth selects which differing pairs get a patch: 0 is the root
	// pair, 1 its children, and so on.
	Depth int

	// OutDir receives the .patch files. Empty means the current directory.
	OutDir string

	// Tool overrides the git binary, mainly for tests.
	Tool string
}

// pair is one differing directory pair selected for patch generation.
type pair struct {
	a, b string
}

// Generate writes one patch file per differing directory pair at the
// configured depth, diffing each pair with git diff --no-index. Every pair
// is attempted even when earlier ones fail; the returned error joins all
// failures.
func Generate(root engine.Node, cfg Config) (int, error) {
	tool := cfg.Tool
	if tool == "" {
		tool = "git"
	}

	var pairs []pair
	collectPairs(root, 0, cfg.Depth, &pairs)

	written := 0
	var errs []error
	for _, p := range pairs {
		name := patchName(p.a, p.b)
		if cfg.OutDir != "" {
			name = filepath.Join(cfg.OutDir, name)
		}
		if err := writePatch(tool, p.a, p.b, name); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

// collectPairs walks the diff tree down to the wanted depth and gathers
// directory pairs. Pruned pairs count too: their paths are known even
// though their children were never compared.
func collectPairs(n engine.Node, depth, want int, out *[]pair) {
	if !n.DirPair() {
		return
	}
	if depth == want {
		*out = append(*out, pair{a: n.APath, b: n.BPath})
		return
	}
	for _, child := range n.Children {
		collectPairs(child, depth+1, want, out)
	}
}

// patchName derives a stable filename from the pair's base names plus a
// short fingerprint of the full paths, keeping same-named directory pairs
// from colliding.
func patchName(aPath, bPath string) string {
	h := blake3.New()
	h.Write([]byte(aPath))
	h.Write([]byte{0})
	h.Write([]byte(bPath))
	digest := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s_%s_%s.patch", filepath.Base(aPath), filepath.Base(bPath), digest[:12])
}

func writePatch(tool, aPath, bPath, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	cmd := exec.Command(tool, "diff", "--no-index", "--", aPath, bPath)
	cmd.Stdout = f
	cmd.Stderr = os.Stderr

	err = cmd.Run()
	// git diff exits 1 when the inputs differ, which is the expected
	// outcome here. Higher codes and spawn failures are real errors.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s diff --no-index %s %s: %w", tool, aPath, bPath, err)
	}
	return nil
}
