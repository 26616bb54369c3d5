package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var contactTypeFilter string

// contactCmd represents the contact command group.
var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Browse customers and suppliers",
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		params := map[string]string{}
		if contactTypeFilter != "" {
			params["type"] = contactTypeFilter
		}
		contacts, err := client.ListContacts(cmd.Context(), params)
		exitOnError(err, "failed to list contacts")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tEMAIL\tID")
		for _, c := range contacts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ContactName, c.Type, c.Email, c.ID)
		}
		w.Flush()
	},
}

var contactShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		c, err := client.GetContact(cmd.Context(), args[0])
		exitOnError(err, "failed to get contact")

		fmt.Printf("Name:    %s\n", c.ContactName)
		fmt.Printf("Type:    %s\n", c.Type)
		if c.Company != "" {
			fmt.Printf("Company: %s\n", c.Company)
		}
		if c.Email != "" {
			fmt.Printf("Email:   %s\n", c.Email)
		}
		if c.Phone != "" {
			fmt.Printf("Phone:   %s\n", c.Phone)
		}
	},
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		err := client.DeleteContact(cmd.Context(), args[0])
		exitOnError(err, "failed to delete contact")
		fmt.Println("Deleted", args[0])
	},
}

// itemCmd represents the item command group.
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Browse catalog items",
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, client, _ := requireSession(cmd.Context())

		items, err := client.ListItems(cmd.Context(), nil)
		exitOnError(err, "failed to list items")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSALE\tCOST\tID")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				it.Name, money(cfg.Currency, it.SalePrice), money(cfg.Currency, it.CostPrice), it.ID)
		}
		w.Flush()
	},
}

var itemShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one item with its defaults",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, client, _ := requireSession(cmd.Context())

		it, err := client.GetItem(cmd.Context(), args[0])
		exitOnError(err, "failed to get item")

		fmt.Printf("Name:        %s\n", it.Name)
		if it.Description != "" {
			fmt.Printf("Description: %s\n", it.Description)
		}
		fmt.Printf("Sale price:  %s (account %s, tax %s)\n",
			money(cfg.Currency, it.SalePrice),
			it.SaleAccount.DisplayName(), it.TaxRateOnSale.DisplayName())
		fmt.Printf("Cost price:  %s (account %s, tax %s)\n",
			money(cfg.Currency, it.CostPrice),
			it.PurchaseAccount.DisplayName(), it.TaxRateOnPurchase.DisplayName())
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		err := client.DeleteItem(cmd.Context(), args[0])
		exitOnError(err, "failed to delete item")
		fmt.Println("Deleted", args[0])
	},
}

// accountCmd represents the account command group.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Browse the chart of accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger accounts",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		accounts, err := client.ListAccounts(cmd.Context(), nil)
		exitOnError(err, "failed to list accounts")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tTYPE\tID")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.AccountType.DisplayName(), a.ID)
		}
		w.Flush()
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one ledger account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		a, err := client.GetAccount(cmd.Context(), args[0])
		exitOnError(err, "failed to get account")

		fmt.Printf("Code: %s\n", a.Code)
		fmt.Printf("Name: %s\n", a.Name)
		fmt.Printf("Type: %s\n", a.AccountType.DisplayName())
		if a.Description != "" {
			fmt.Printf("Description: %s\n", a.Description)
		}
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a ledger account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		err := client.DeleteAccount(cmd.Context(), args[0])
		exitOnError(err, "failed to delete account")
		fmt.Println("Deleted", args[0])
	},
}

var bankAccountListCmd = &cobra.Command{
	Use:   "banks",
	Short: "List bank accounts",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		accounts, err := client.ListBankAccounts(cmd.Context())
		exitOnError(err, "failed to list bank accounts")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BANK\tACCOUNT\tNUMBER\tTYPE\tID")
		for _, b := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				b.BankName, b.AccountName, b.AccountNumber, b.AccountType.DisplayName(), b.ID)
		}
		w.Flush()
	},
}

// taxtypeCmd represents the taxtype command group.
var taxtypeCmd = &cobra.Command{
	Use:   "taxtype",
	Short: "Browse tax rates",
}

var taxtypeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tax rates",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		taxTypes, err := client.ListTaxTypes(cmd.Context())
		exitOnError(err, "failed to list tax types")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tRATE\tID")
		for _, tt := range taxTypes {
			fmt.Fprintf(w, "%s\t%g%%\t%s\n", tt.Name, tt.TaxPercentage, tt.ID)
		}
		w.Flush()
	},
}

var taxtypeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one tax rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		tt, err := client.GetTaxType(cmd.Context(), args[0])
		exitOnError(err, "failed to get tax type")

		fmt.Printf("Name: %s\n", tt.Name)
		fmt.Printf("Rate: %g%%\n", tt.TaxPercentage)
	},
}

var taxtypeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tax rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		err := client.DeleteTaxType(cmd.Context(), args[0])
		exitOnError(err, "failed to delete tax type")
		fmt.Println("Deleted", args[0])
	},
}

// projectCmd represents the project command group.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Browse projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		projects, err := client.ListProjects(cmd.Context())
		exitOnError(err, "failed to list projects")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\n", p.Name, p.ID)
		}
		w.Flush()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		p, err := client.GetProject(cmd.Context(), args[0])
		exitOnError(err, "failed to get project")

		fmt.Printf("Name: %s\n", p.Name)
		fmt.Printf("ID:   %s\n", p.ID)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, client, _ := requireSession(cmd.Context())

		err := client.DeleteProject(cmd.Context(), args[0])
		exitOnError(err, "failed to delete project")
		fmt.Println("Deleted", args[0])
	},
}

func init() {
	contactListCmd.Flags().StringVar(&contactTypeFilter, "type", "", "Filter by contact type (Customer or Supplier)")

	contactCmd.AddCommand(contactListCmd, contactShowCmd, contactDeleteCmd)
	itemCmd.AddCommand(itemListCmd, itemShowCmd, itemDeleteCmd)
	accountCmd.AddCommand(accountListCmd, accountShowCmd, accountDeleteCmd, bankAccountListCmd)
	taxtypeCmd.AddCommand(taxtypeListCmd, taxtypeShowCmd, taxtypeDeleteCmd)
	projectCmd.AddCommand(projectListCmd, projectShowCmd, projectDeleteCmd)

	rootCmd.AddCommand(contactCmd, itemCmd, accountCmd, taxtypeCmd, projectCmd)
}
