package display

import (
	"fmt"
	"os"

	"github.com/tiiuae/lerobot-edge/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` _        ___      _           _     ___    _
| |   ___| _ \___ | |__  ___  | |_  | __|__| |__ _ ___
| |__/ -_)   / _ \| '_ \/ _ \ |  _| | _|/ _` + "`" + ` / _` + "`" + ` / -_)
|____\___|_|_\___/|_.__/\___/  \__| |___\__,_\__, \___|
                                             |___/
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
