package slip

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
)

// UserFiles locates the optional raw command files a site can drop into
// the spool directory to be injected verbatim at job and page boundaries:
// <printer>_StartJob.prn, <printer>_EndJob.prn, <printer>_StartPage.prn,
// <printer>_EndPage.prn. A missing file is not an error.
type UserFiles struct {
	Dir     string
	Printer string
}

func (u *UserFiles) path(event string) string {
	return filepath.Join(u.Dir, u.Printer+"_"+event+".prn")
}

// inject copies the user file for event to the output, if one exists.
func (j *Job) inject(event string) error {
	if j.Files == nil {
		return nil
	}

	path := j.Files.path(event)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fail(KindConfig, "open user file "+path, err)
	}
	defer f.Close()
	logInternal.Debugf("injecting user file %s", path)

	buf := make([]byte, 1024)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if werr := j.write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fail(KindConfig, "read user file "+path, rerr)
		}
	}
}
