package main

import (
	"fmt"
	"os"

	"github.com/krainode/rpcbot/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	inFile  string
	outFile string
)

func init() {
	rootCmd.Flags().StringVarP(&inFile, "in", "i", "chains.yaml", "chain list source (chain -> network -> provider: url)")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "chains.json", "registry document to write")
}

var rootCmd = &cobra.Command{
	Use:   "build-chains",
	Short: "build the chain registry document from chains.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := buildChains(inFile, outFile)
		if err != nil {
			return err
		}
		log.Info().Str("out", outFile).Int("chains", n).Msg("chain registry written")
		return nil
	},
}

// buildChains converts inPath to a pretty-printed registry at outPath and
// returns the number of chains written.
func buildChains(inPath, outPath string) (int, error) {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", inPath, err)
	}
	reg, err := registry.BuildFromYAML(src)
	if err != nil {
		return 0, err
	}
	data, err := reg.Marshal()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}
	return len(reg.Chains), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
