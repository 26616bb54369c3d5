package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/pkg/api"
)

var (
	loginUsername string
	loginPassword string

	registerUsername string
	registerPassword string
	registerName     string
	registerEmail    string
)

// loginCmd represents the login command.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long: `Authenticate against the backend and persist the session token.

The token is written to the local token file and reused by every other
command until logout.

Example:
  books-admin login --username admin`,
	Run: runLogin,
}

// logoutCmd represents the logout command.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run:   runLogout,
}

// whoamiCmd represents the whoami command.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Run:   runWhoami,
}

// registerCmd represents the register command.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new backend account and log in as it",
	Run:   runRegister,
}

// passwdCmd represents the passwd command.
var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the logged-in user's password",
	Run:   runPasswd,
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Username (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	loginCmd.MarkFlagRequired("username")

	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Username (required)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(passwdCmd)
}

// promptLine reads one line from stdin after printing a prompt.
func promptLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func runLogin(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	client := newClient(cfg)
	sess := newSession(cfg, client)

	password := loginPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	user, err := sess.Login(cmd.Context(), loginUsername, password)
	exitOnError(err, "login failed")

	log.Info().Str("username", user.Username).Msg("logged in")
	fmt.Printf("Logged in as %s\n", user.Username)
}

func runLogout(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	client := newClient(cfg)
	sess := newSession(cfg, client)

	err := sess.Logout()
	exitOnError(err, "logout failed")

	fmt.Println("Logged out")
}

func runWhoami(cmd *cobra.Command, args []string) {
	_, client, sess := requireSession(cmd.Context())

	user := sess.User()
	if user == nil {
		// Env-token sessions have no profile loaded yet.
		fetched, err := client.Profile(cmd.Context())
		exitOnError(err, "failed to fetch profile")
		user = fetched
	}

	fmt.Printf("Username: %s\n", user.Username)
	if user.Name != "" {
		fmt.Printf("Name:     %s\n", user.Name)
	}
	if user.Email != "" {
		fmt.Printf("Email:    %s\n", user.Email)
	}
	if user.Role != "" {
		fmt.Printf("Role:     %s\n", user.Role)
	}
}

func runRegister(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	client := newClient(cfg)
	sess := newSession(cfg, client)

	password := registerPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	user, err := sess.Register(cmd.Context(), api.RegisterPayload{
		Username: registerUsername,
		Password: password,
		Name:     registerName,
		Email:    registerEmail,
	})
	exitOnError(err, "registration failed")

	fmt.Printf("Registered and logged in as %s\n", user.Username)
}

func runPasswd(cmd *cobra.Command, args []string) {
	_, client, _ := requireSession(cmd.Context())

	current := promptLine("Current password: ")
	next := promptLine("New password: ")
	if next == "" {
		exitOnError(fmt.Errorf("empty password"), "invalid new password")
	}

	err := client.ChangePassword(cmd.Context(), current, next)
	exitOnError(err, "failed to change password")

	fmt.Println("Password changed")
}
