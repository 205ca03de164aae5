package terminal

import "os"

func processByPID(pid int) (*os.Process, error) {
	return os.FindProcess(pid)
}
