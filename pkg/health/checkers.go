package health

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck reports unhealthy when the goroutine count exceeds the
// threshold. Useful as a liveness check to catch goroutine leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		count := runtime.NumGoroutine()
		if count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// DirWritableCheck reports unhealthy when the directory cannot be written
// to. Useful as a readiness check for services that persist records to disk:
// a full volume or revoked permissions should take the service out of
// rotation before writes start failing.
func DirWritableCheck(dir string) CheckFunc {
	return func(_ context.Context) error {
		f, err := os.CreateTemp(dir, ".healthcheck-*")
		if err != nil {
			return errors.Wrapf(err, "directory %s is not writable", dir)
		}
		name := f.Name()
		if err := f.Close(); err != nil {
			_ = os.Remove(name)
			return errors.Wrap(err, "close probe file")
		}
		if err := os.Remove(name); err != nil {
			return errors.Wrapf(err, "remove probe file %s", filepath.Base(name))
		}
		return nil
	}
}
