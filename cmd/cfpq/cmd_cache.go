package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfpq/store"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear cached closure results",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "count",
			Short: "Print the number of cached results",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
				n, err := s.Count(cmd.Context())
				if err != nil {
					return err
				}
				printf(cmd, "%d\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the fingerprints of cached results",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
				keys, err := s.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					printf(cmd, "%s\n", k)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "show KEY",
			Short: "Print the triples of one cached result",
			Args:  cobra.ExactArgs(1),
			RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, args []string) error {
				key, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid key %q: %w", args[0], err)
				}
				res, err := s.Load(cmd.Context(), key)
				if err != nil {
					return err
				}
				for _, t := range res.Triples() {
					printf(cmd, "%s -%s-> %s\n", t.From, t.Nonterminal, t.To)
				}
				printf(cmd, "triples: %d passes: %d nodes: %d\n", res.Len(), res.Passes, res.Nodes)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Delete every cached result",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, s *store.Store, _ []string) error {
				n, err := s.Purge(cmd.Context())
				if err != nil {
					return err
				}
				printf(cmd, "purged %d\n", n)
				return nil
			}),
		},
	)

	return cmd
}

// withStore loads the configuration and opens the store around fn.
func (a *app) withStore(fn func(*cobra.Command, *store.Store, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.load(cmd); err != nil {
			return err
		}
		s, err := store.Open(a.cfg.StoreConfig(a.logger))
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(cmd, s, args)
	}
}
