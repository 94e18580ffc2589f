package refdb

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ulthran/unassigner/config"
)

// PrepareCmd is the handler for `unassigner prepare`: download the reference
// sets and format them into BLAST databases.
func PrepareCmd(cmd *cobra.Command, args []string) {
	c := config.New()

	db := &DB{
		Dir:     refDir(cmd, c),
		Timeout: time.Duration(c.Timeout) * time.Second,
		Verbose: c.Verbose,
	}

	if clean, _ := cmd.Flags().GetBool("clean"); clean {
		if err := db.Clean(); err != nil {
			stderr.Fatalln(err)
		}
	}

	if err := db.Prepare(context.Background()); err != nil {
		stderr.Fatalln(err)
	}
}

// CleanCmd is the handler for `unassigner clean`: remove the downloaded and
// derived reference files.
func CleanCmd(cmd *cobra.Command, args []string) {
	c := config.New()

	db := &DB{Dir: refDir(cmd, c), Verbose: c.Verbose}
	if err := db.Clean(); err != nil {
		stderr.Fatalln(err)
	}
}

// refDir is the directory with the reference files. The dir flag is read off
// the command, rather than viper, because prepare and clean each have their
// own copy and only one could win a viper binding.
func refDir(cmd *cobra.Command, c *config.Config) string {
	if cmd.Flags().Changed("dir") {
		dir, _ := cmd.Flags().GetString("dir")
		return dir
	}
	return c.Dir
}
