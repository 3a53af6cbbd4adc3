package vulnticket

import (
	"fmt"
	"io"
	"os"
)

// logOut receives status lines; stdout stays free for machine output.
var logOut io.Writer = os.Stderr

func logf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(logOut, format+"\n", args...)
}

func debugf(format string, args ...any) {
	if !flagVerbose || flagQuiet {
		return
	}
	fmt.Fprintf(logOut, "[debug] "+format+"\n", args...)
}
