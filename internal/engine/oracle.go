package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// compareBufferSize is the read buffer used when fingerprinting contents.
const compareBufferSize = 32 * 1024

// fingerprint is a 64-byte BLAKE3 digest of a file's contents.
type fingerprint [64]byte

// sameEntry reports whether two entries of the same kind have equal content.
// Cheap evidence settles it first: differing sizes rule regular files out,
// and a shared inode rules identity in, before any bytes are read. Paranoid
// mode skips both shortcuts and goes straight to content.
func (c *Comparer) sameEntry(a, b *Entry) (bool, error) {
	if !c.cfg.Paranoid {
		if a.Kind == KindRegular && a.Size != b.Size {
			c.stats.AddShortcutSize(1)
			return false, nil
		}
		if a.DevIno() == b.DevIno() {
			c.stats.AddShortcutInode(1)
			return true, nil
		}
	}

	switch a.Kind {
	case KindSymlink:
		ta, err := os.Readlink(a.Path)
		if err != nil {
			return false, fmt.Errorf("readlink %s: %w", a.Path, err)
		}
		tb, err := os.Readlink(b.Path)
		if err != nil {
			return false, fmt.Errorf("readlink %s: %w", b.Path, err)
		}
		return ta == tb, nil

	case KindRegular:
		fa, err := c.fingerprintFile(a)
		if err != nil {
			return false, err
		}
		fb, err := c.fingerprintFile(b)
		if err != nil {
			return false, err
		}
		return fa == fb, nil

	default:
		// Device nodes compare by the device they refer to. Fifos and
		// sockets carry no rdev, so same-kind pairs always match.
		return a.Rdev() == b.Rdev(), nil
	}
}

// fingerprintFile hashes the file's contents. Fingerprints are cached by
// inode, so hardlinked files are read once per run.
func (c *Comparer) fingerprintFile(e *Entry) (fingerprint, error) {
	key := e.DevIno()
	if !c.cfg.Paranoid {
		if cached, ok := c.fingerprints.Load(key); ok {
			c.stats.AddCacheHits(1)
			return cached.(fingerprint), nil
		}
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return fingerprint{}, fmt.Errorf("open %s: %w", e.Path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, compareBufferSize)
	n, err := io.CopyBuffer(h, f, buf)
	if err != nil {
		return fingerprint{}, fmt.Errorf("read %s: %w", e.Path, err)
	}
	c.stats.AddBytesRead(n)
	c.stats.AddFilesFingerprinted(1)

	var fp fingerprint
	if _, err := h.Digest().Read(fp[:]); err != nil {
		return fingerprint{}, fmt.Errorf("digest %s: %w", e.Path, err)
	}
	if !c.cfg.Paranoid {
		c.fingerprints.Store(key, fp)
	}
	return fp, nil
}
