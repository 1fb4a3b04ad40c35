package clone

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// fixOwnership recursively reassigns a cloned tree to the invoking user.
// Under sudo the clone runs as root, so without this the operator ends up
// with a tree they cannot write to. Outside sudo it is a no-op.
func fixOwnership(root string) error {
	uid, gid, ok := invokingUser()
	if !ok {
		return nil
	}

	return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chown(path, uid, gid)
	})
}

// invokingUser resolves the pre-sudo UID/GID from the environment.
func invokingUser() (uid, gid int, ok bool) {
	uidStr, gidStr := os.Getenv("SUDO_UID"), os.Getenv("SUDO_GID")
	if uidStr == "" || gidStr == "" {
		return 0, 0, false
	}

	uid, err := strconv.Atoi(uidStr)
	if err != nil {
		return 0, 0, false
	}
	gid, err = strconv.Atoi(gidStr)
	if err != nil {
		return 0, 0, false
	}
	return uid, gid, true
}
