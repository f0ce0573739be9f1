package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill catalog by category",
	Args:  cobra.NoArgs,
	RunE:  runSkills,
}

var certificationsCmd = &cobra.Command{
	Use:   "certifications",
	Short: "List the certification catalog by tier",
	Args:  cobra.NoArgs,
	RunE:  runCertifications,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(certificationsCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	catalog, err := newClient().Skills(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch skills: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, name := range sortedKeys(catalog) {
		category := catalog[name]
		fmt.Fprintf(out, "%s (%d)\n  %s\n", name, len(category.Skills), strings.Join(category.Skills, ", "))
	}
	return nil
}

func runCertifications(cmd *cobra.Command, _ []string) error {
	catalog, err := newClient().Certifications(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch certifications: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, key := range sortedKeys(catalog) {
		tier := catalog[key]
		fmt.Fprintf(out, "%s: %s (value %.0f)\n", key, tier.Label, tier.Value)
		for _, c := range tier.Certifications {
			fmt.Fprintf(out, "  - %s\n", c)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
