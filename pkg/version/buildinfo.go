package version

import (
	"bytes"
	"fmt"
	"runtime/debug"
	"text/tabwriter"
)

func init() {
	buildInfo = moduleBuildInfo
}

// moduleBuildInfo lists the main module and every dependency linked in,
// one per line, replacements after an arrow.
func moduleBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "not built in module mode"
	}

	buf := new(bytes.Buffer)
	w := tabwriter.NewWriter(buf, 0, 8, 1, ' ', 0)
	fmt.Fprintf(w, " mod\t%s\t%s\n", info.Main.Path, info.Main.Version)
	for _, dep := range info.Deps {
		fmt.Fprintf(w, " dep\t%s\t%s", dep.Path, dep.Version)
		if dep.Replace != nil {
			fmt.Fprintf(w, "\t=> %s\t%s", dep.Replace.Path, dep.Replace.Version)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return buf.String()
}
