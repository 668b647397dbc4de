/*
 * main.go, part of godos.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsci/godos/batch"
)

var (
	rawDir   string
	outDir   string
	jobs     int
	optsFile string
)

var rootCmd = &cobra.Command{
	Use:   "godos <target>",
	Short: "extract spin-resolved DOS tables for a strain series",
	Long: `godos reads the spectral documents of one target material's strain
series from <raw>/<target>_dos, reconciles the alpha/beta spin labeling of
every calculation, and writes the tables plus an ordered index into a single
container under <out>/data of <target>.`,
	Args:         cobra.ExactArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func run(cmd *cobra.Command, args []string) error {
	start := time.Now()
	target := args[0]
	opts := batch.DefaultOptions()
	if optsFile != "" {
		data, err := os.ReadFile(optsFile)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, opts); err != nil {
			return fmt.Errorf("can't parse options file %s: %w", optsFile, err)
		}
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	in := filepath.Join(rawDir, target+"_dos")
	outPath := filepath.Join(outDir, "data of "+target)
	if err := os.MkdirAll(outPath, 0755); err != nil {
		return err
	}
	out := filepath.Join(outPath, "DOS_of_"+target+".dtf")
	if err := batch.Assemble(in, out, opts); err != nil {
		return err
	}
	fmt.Println("Done!")
	fmt.Printf("Took %.2f seconds\n", time.Since(start).Seconds())
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&rawDir, "raw", "Raw data", "directory holding the per-target series directories")
	rootCmd.Flags().StringVar(&outDir, "out", "Spin_data_analysis", "directory the per-target containers are written under")
	rootCmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent parsers (0 = one per CPU)")
	rootCmd.Flags().StringVar(&optsFile, "options", "", "YAML file with batch options")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
