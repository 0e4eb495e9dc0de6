package main

import (
	"fmt"
	"io"

	humanize "github.com/dustin/go-humanize"

	"github.com/jointwt/ghuser/types"
)

// PrintComposite ...
func PrintComposite(w io.Writer, u types.CompositeUser) {
	fmt.Fprintf(w, "%s", u.Profile.Login)
	if u.Profile.URL != "" {
		fmt.Fprintf(w, " <%s>", u.Profile.URL)
	}
	fmt.Fprintln(w)
	if u.Profile.Bio != "" {
		fmt.Fprintf(w, "  %s\n", u.Profile.Bio)
	}

	fmt.Fprintf(w, "\nFollowers (%s):\n", humanize.Comma(int64(len(u.Followers))))
	for _, f := range u.Followers {
		fmt.Fprintf(w, "  @%s\n", f.Login)
	}

	fmt.Fprintf(w, "\nRepositories (%s, %s stars):\n",
		humanize.Comma(int64(len(u.Repositories))),
		humanize.Comma(int64(u.Stars())),
	)
	for _, r := range u.Repositories {
		line := fmt.Sprintf("  %s", r.Path())
		if r.Stars > 0 {
			line += fmt.Sprintf(" ★%s", humanize.Comma(int64(r.Stars)))
		}
		if r.Fork {
			line += " (fork)"
		}
		fmt.Fprintln(w, line)
	}
}
