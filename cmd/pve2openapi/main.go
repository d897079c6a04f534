package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pvetools/pve2openapi"
	"github.com/pvetools/pve2openapi/internal/config"
)

func main() {
	var (
		outputPath string
		format     string
		configPath string
	)

	var rootCmd = &cobra.Command{
		Use:   "pve2openapi [apidoc.js]",
		Short: "pve2openapi converts the Proxmox VE API viewer tree into an OpenAPI 3 document.",
		Long: `pve2openapi reads the apidoc.js file shipped with the Proxmox VE
documentation, walks the apiSchema tree it assigns, and writes an equivalent
OpenAPI 3 document. Document metadata can be adjusted through an optional
.pve2openapi.yaml next to the input file.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			inputPath := args[0]

			// 1. Load configuration, either from the explicit --config file
			//    or from the directory holding the input.
			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load(filepath.Dir(inputPath))
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
				os.Exit(1)
			}

			// 2. Read, decode and convert the whole tree in one pass.
			result, err := pve2openapi.ConvertFile(inputPath, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", inputPath, err)
				os.Exit(1)
			}

			// 3. Serialize and write the document.
			data, err := result.Marshal(format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error serializing document: %v\n", err)
				os.Exit(1)
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Converted %d paths, %d operations.\n",
				result.Stats.Paths, result.Stats.Operations)
			fmt.Printf("Successfully generated OpenAPI spec at: %s\n", outputPath)
		},
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "openapi.json", "Output file for the OpenAPI document")
	rootCmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Explicit configuration file (default: "+config.FileName+" next to the input)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
