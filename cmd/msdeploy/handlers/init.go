package handlers

import (
	"context"
	"fmt"
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	cfg, err := runWizard(ctx)
	if err != nil {
		return err
	}

	if err := cfg.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath)
	return nil
}

// printInitSuccess prints the success message with next steps.
func printInitSuccess(outputPath string) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your Hetzner Cloud API token:")
	fmt.Println("     export HCLOUD_TOKEN=<your-token>")
	fmt.Println()
	fmt.Println("  2. For the container strategy, set registry credentials:")
	fmt.Println("     export REGISTRY_USERNAME=<user>")
	fmt.Println("     export REGISTRY_PASSWORD=<password>")
	fmt.Println()
	fmt.Println("  3. Deploy the service:")
	fmt.Println("     msdeploy deploy")
	fmt.Println()
}
