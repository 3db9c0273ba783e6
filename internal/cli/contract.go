package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/internal/query"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

type contractFlags struct {
	contact string
	policy  string
	signed  string
	expiry  string
	premium string
}

func (a *app) newContractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contracts between contacts and policies",
	}
	cmd.AddCommand(
		a.newContractAddCmd(),
		a.newContractEditCmd(),
		a.newContractDeleteCmd(),
		a.newContractListCmd(),
	)
	return cmd
}

func (a *app) newContractAddCmd() *cobra.Command {
	var f contractFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Sign a contract",
		Long: `Add signs a contact up to a policy. The contract takes the contact's
name and NRIC, and is recorded on both the contact and the policy.
A person may hold only one contract per policy.

Example:
  insurebook contract add --contact "Alice Pauline" --policy LIF001 \
    --signed 2024-01-01 --expiry 2034-01-01 --premium 1200.50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *types.Contract
			err := a.mutate(func(b *book.Book) error {
				holder, err := findContact(b, f.contact)
				if err != nil {
					return err
				}
				c, err = types.NewContract(types.ContractInput{
					ID:         string(b.GenerateUniqueContractID()),
					Name:       string(holder.Name()),
					NationalID: string(holder.NationalID()),
					PolicyID:   f.policy,
					SignedDate: f.signed,
					ExpiryDate: f.expiry,
					Premium:    f.premium,
				})
				if err != nil {
					return err
				}
				return b.AddContractLinkingContactAndPolicy(c)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContractOut(c), func(w io.Writer) {
				fmt.Fprintf(w, "New contract added: %s\n", c)
			})
		},
	}
	cmd.Flags().StringVar(&f.contact, "contact", "", "name of the contact signing (required)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "policy ID (required)")
	cmd.Flags().StringVar(&f.signed, "signed", "", "signing date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "expiry date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.premium, "premium", "", "premium amount (required)")
	for _, name := range []string{"contact", "policy", "signed", "expiry", "premium"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) newContractEditCmd() *cobra.Command {
	var f contractFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a contract",
		Long: `Edit changes the policy, dates or premium of a contract, moving its
back-references when the policy changes.

Example:
  insurebook contract edit CON001 --expiry 2040-01-01 --premium 1500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edited *types.Contract
			err := a.mutate(func(b *book.Book) error {
				target, err := findContract(b, args[0])
				if err != nil {
					return err
				}
				in := target.Input()
				changed := cmd.Flags().Changed
				if changed("policy") {
					in.PolicyID = f.policy
				}
				if changed("signed") {
					in.SignedDate = f.signed
				}
				if changed("expiry") {
					in.ExpiryDate = f.expiry
				}
				if changed("premium") {
					in.Premium = f.premium
				}
				if edited, err = types.NewContract(in); err != nil {
					return err
				}
				return b.SetContract(target, edited)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContractOut(edited), func(w io.Writer) {
				fmt.Fprintf(w, "Edited contract: %s\n", edited)
			})
		},
	}
	cmd.Flags().StringVar(&f.policy, "policy", "", "new policy ID")
	cmd.Flags().StringVar(&f.signed, "signed", "", "new signing date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "new expiry date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.premium, "premium", "", "new premium amount")
	return cmd
}

func (a *app) newContractDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contract",
		Long:  "Delete removes a contract and drops it from its holder and policy.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deleted *types.Contract
			err := a.mutate(func(b *book.Book) error {
				c, err := findContract(b, args[0])
				if err != nil {
					return err
				}
				deleted = c
				return b.RemoveContract(c)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContractOut(deleted), func(w io.Writer) {
				fmt.Fprintf(w, "Deleted contract: %s\n", deleted)
			})
		},
	}
}

func (a *app) newContractListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		Long: `List shows contracts, optionally filtered by a CEL expression over id,
name, nric, policy, signed, expiry (timestamps) and premium (a number).

Example:
  insurebook contract list --where 'premium > 1000.0' --sort=-premium
  insurebook contract list --where 'expiry < timestamp("2030-01-01T00:00:00Z")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var contracts []*types.Contract
			err := a.read(func(b *book.Book) error {
				var err error
				contracts, err = apply(f, query.Contracts, b.FilteredContracts(), b.UpdateContractFilter, b.UpdateContractSort)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), mapSlice(contracts, newContractOut), func(w io.Writer) {
				rows := mapSlice(contracts, func(c *types.Contract) []string {
					return []string{
						string(c.ID()),
						truncate(string(c.Name()), 30),
						string(c.NationalID()),
						string(c.PolicyID()),
						c.SignedDate().String(),
						c.ExpiryDate().String(),
						c.Premium().String(),
					}
				})
				printTable(w, "contract", []string{"ID", "HOLDER", "NRIC", "POLICY", "SIGNED", "EXPIRY", "PREMIUM"}, rows)
			})
		},
	}
	f.register(cmd, query.Contracts.SortFields())
	return cmd
}

func findContract(b *book.Book, id string) (*types.Contract, error) {
	cid, err := types.ParseContractID(id)
	if err != nil {
		return nil, err
	}
	c, ok := b.ContractByID(cid)
	if !ok {
		return nil, &types.NotFoundError{Entity: types.EntityContract, Key: id}
	}
	return c, nil
}
