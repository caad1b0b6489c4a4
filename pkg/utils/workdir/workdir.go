package workdir

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// Enter changes the process working directory to dir. The returned function
// changes it back to the directory that was current before the call.
func Enter(dir string) (func() error, error) {
	orig, err := os.Getwd()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get working directory")
	}

	if err := os.Chdir(dir); err != nil {
		return nil, goerr.Wrap(err, "failed to change working directory", goerr.V("dir", dir))
	}

	return func() error {
		if err := os.Chdir(orig); err != nil {
			return goerr.Wrap(err, "failed to restore working directory", goerr.V("dir", orig))
		}
		return nil
	}, nil
}
