package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/internal/query"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func (a *app) newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage policies",
	}
	cmd.AddCommand(
		a.newPolicyAddCmd(),
		a.newPolicyEditCmd(),
		a.newPolicyDeleteCmd(),
		a.newPolicyListCmd(),
	)
	return cmd
}

func (a *app) newPolicyAddCmd() *cobra.Command {
	var name, details, id string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a policy",
		Long: `Add creates a policy. Without --id a fresh six-character ID is
generated. Two policies may not share a name and details.

Example:
  insurebook policy add --name "Life Plan" --details "Covers death and disability"
  insurebook policy add --name "Travel" --details "Overseas trips" --id TRV001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *types.Policy
			err := a.mutate(func(b *book.Book) error {
				pid := id
				if pid == "" {
					pid = string(b.GenerateUniquePolicyID())
				}
				var err error
				p, err = types.NewPolicy(types.PolicyInput{Name: name, Details: details, ID: pid})
				if err != nil {
					return err
				}
				return b.AddPolicy(p)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newPolicyOut(p), func(w io.Writer) {
				fmt.Fprintf(w, "New policy added: %s\n", p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "policy name (required)")
	cmd.Flags().StringVar(&details, "details", "", "policy details (required)")
	cmd.Flags().StringVar(&id, "id", "", "policy ID (default: generated)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func (a *app) newPolicyEditCmd() *cobra.Command {
	var name, details string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a policy",
		Long: `Edit replaces the name or details of a policy. IDs cannot change.

Example:
  insurebook policy edit LIF001 --details "Covers death, disability and illness"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edited *types.Policy
			err := a.mutate(func(b *book.Book) error {
				target, err := findPolicy(b, args[0])
				if err != nil {
					return err
				}
				in := target.Input()
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				if cmd.Flags().Changed("details") {
					in.Details = details
				}
				if edited, err = types.NewPolicy(in); err != nil {
					return err
				}
				return b.SetPolicy(target, edited)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newPolicyOut(edited), func(w io.Writer) {
				fmt.Fprintf(w, "Edited policy: %s\n", edited)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new policy name")
	cmd.Flags().StringVar(&details, "details", "", "new policy details")
	return cmd
}

func (a *app) newPolicyDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a policy",
		Long: `Delete removes a policy. A policy with contracts signed against it is
only deleted with --force, which removes those contracts first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deleted *types.Policy
			err := a.mutate(func(b *book.Book) error {
				p, err := findPolicy(b, args[0])
				if err != nil {
					return err
				}
				if b.PolicyHasAnyContract(p) && !force {
					return userErrorf("policy %s has %d contract(s); use --force to remove them too",
						p.ID(), len(b.ContractsOfPolicy(p)))
				}
				for _, ct := range b.ContractsOfPolicy(p) {
					if err := b.RemoveContract(ct); err != nil {
						return err
					}
				}
				if p, err = findPolicy(b, args[0]); err != nil {
					return err
				}
				deleted = p
				return b.DeletePolicy(p)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newPolicyOut(deleted), func(w io.Writer) {
				fmt.Fprintf(w, "Deleted policy: %s\n", deleted)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "also remove contracts signed against the policy")
	return cmd
}

func (a *app) newPolicyListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		Long: `List shows policies, optionally filtered by a CEL expression over id,
name and details.

Example:
  insurebook policy list --where 'details.contains("travel")' --sort name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var policies []*types.Policy
			err := a.read(func(b *book.Book) error {
				var err error
				policies, err = apply(f, query.Policies, b.FilteredPolicies(), b.UpdatePolicyFilter, b.UpdatePolicySort)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), mapSlice(policies, newPolicyOut), func(w io.Writer) {
				rows := mapSlice(policies, func(p *types.Policy) []string {
					return []string{
						string(p.ID()),
						truncate(string(p.Name()), 30),
						truncate(string(p.Details()), 40),
						joinIDs(p.Contracts()),
					}
				})
				printTable(w, "policy", []string{"ID", "NAME", "DETAILS", "CONTRACTS"}, rows)
			})
		},
	}
	f.register(cmd, query.Policies.SortFields())
	return cmd
}

func findPolicy(b *book.Book, id string) (*types.Policy, error) {
	pid, err := types.ParsePolicyID(id)
	if err != nil {
		return nil, err
	}
	p, ok := b.PolicyByID(pid)
	if !ok {
		return nil, &types.NotFoundError{Entity: types.EntityPolicy, Key: id}
	}
	return p, nil
}
