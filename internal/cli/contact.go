package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/internal/query"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// contactFlags holds the field flags of contact add and edit.
type contactFlags struct {
	name    string
	phone   string
	nric    string
	email   string
	address string
	tags    []string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.nric, "nric", "", "national identification number")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag (repeatable)")
}

// overlay copies every flag the user set onto in.
func (f *contactFlags) overlay(cmd *cobra.Command, in types.ContactInput) types.ContactInput {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("phone") {
		in.Phone = f.phone
	}
	if changed("nric") {
		in.NationalID = f.nric
	}
	if changed("email") {
		in.Email = f.email
	}
	if changed("address") {
		in.Address = f.address
	}
	if changed("tag") {
		in.Tags = f.tags
	}
	return in
}

func (a *app) newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}
	cmd.AddCommand(
		a.newContactAddCmd(),
		a.newContactEditCmd(),
		a.newContactDeleteCmd(),
		a.newContactListCmd(),
	)
	return cmd
}

func (a *app) newContactAddCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Long: `Add creates a contact. Names are unique within the book.

Example:
  insurebook contact add --name "Alice Pauline" --phone 94351253 \
    --nric S0123456A --email alice@example.com \
    --address "123, Jurong West Ave 6, #08-111" --tag friends`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := types.NewContact(f.overlay(cmd, types.ContactInput{}))
			if err != nil {
				return err
			}
			if err := a.mutate(func(b *book.Book) error { return b.AddContact(c) }); err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContactOut(c), func(w io.Writer) {
				fmt.Fprintf(w, "New contact added: %s\n", c)
			})
		},
	}
	f.register(cmd)
	for _, name := range []string{"name", "phone", "nric", "email", "address"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) newContactEditCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a contact",
		Long: `Edit replaces the given fields of the named contact. Contracts and
appointments follow a change of name or NRIC.

Example:
  insurebook contact edit "Alice Pauline" --phone 91234567
  insurebook contact edit "Alice Pauline" --tag friends --tag colleagues`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edited *types.Contact
			err := a.mutate(func(b *book.Book) error {
				target, err := findContact(b, args[0])
				if err != nil {
					return err
				}
				edited, err = types.NewContact(f.overlay(cmd, target.Input()))
				if err != nil {
					return err
				}
				if err := b.SetContact(target, edited); err != nil {
					return err
				}
				edited, _ = b.ContactByName(edited.Name())
				return nil
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContactOut(edited), func(w io.Writer) {
				fmt.Fprintf(w, "Edited contact: %s\n", edited)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newContactDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a contact",
		Long: `Delete removes the named contact. A contact holding contracts is only
deleted with --force, which removes those contracts first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deleted *types.Contact
			err := a.mutate(func(b *book.Book) error {
				c, err := findContact(b, args[0])
				if err != nil {
					return err
				}
				held := b.ContractsOf(c)
				if len(held) > 0 && !force {
					return userErrorf("contact %s holds %d contract(s); use --force to remove them too", c.Name(), len(held))
				}
				for _, ct := range held {
					if err := b.RemoveContract(ct); err != nil {
						return err
					}
				}
				// Removing contracts rewrote the contact's back-references.
				if c, err = findContact(b, args[0]); err != nil {
					return err
				}
				deleted = c
				return b.DeleteContact(c)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newContactOut(deleted), func(w io.Writer) {
				fmt.Fprintf(w, "Deleted contact: %s\n", deleted)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "also remove the contact's contracts")
	return cmd
}

func (a *app) newContactListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long: `List shows contacts, optionally filtered by a CEL expression over
name, phone, nric, email, address and tags.

Example:
  insurebook contact list
  insurebook contact list --where '"friends" in tags' --sort name
  insurebook contact list --sort=-name --limit 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var contacts []*types.Contact
			err := a.read(func(b *book.Book) error {
				var err error
				contacts, err = apply(f, query.Contacts, b.FilteredContacts(), b.UpdateContactFilter, b.UpdateContactSort)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), mapSlice(contacts, newContactOut), func(w io.Writer) {
				rows := mapSlice(contacts, func(c *types.Contact) []string {
					return []string{
						truncate(string(c.Name()), 30),
						string(c.Phone()),
						string(c.NationalID()),
						string(c.Email()),
						joinIDs(c.Tags()),
						joinIDs(c.Contracts()),
					}
				})
				printTable(w, "contact", []string{"NAME", "PHONE", "NRIC", "EMAIL", "TAGS", "CONTRACTS"}, rows)
			})
		},
	}
	f.register(cmd, query.Contacts.SortFields())
	return cmd
}

func findContact(b *book.Book, name string) (*types.Contact, error) {
	n, err := types.ParseName(name)
	if err != nil {
		return nil, err
	}
	c, ok := b.ContactByName(n)
	if !ok {
		return nil, &types.NotFoundError{Entity: types.EntityContact, Key: name}
	}
	return c, nil
}
