package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
	pgrepo "github.com/BenjaminKakai/clientmanagementbackend/internal/repository/postgres"
	redisrepo "github.com/BenjaminKakai/clientmanagementbackend/internal/repository/redis"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/service"
)

const passwordEnv = "INTAKE_PASSWORD"

var (
	userEmail    string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a login account",
	Long: `Add an account that can sign in through POST /login.

The password is hashed with bcrypt before it is stored. Pass it with
--password or the INTAKE_PASSWORD environment variable.

Examples:
  intakectl user create --email agent@example.com --password 's3cret-pass'
  INTAKE_PASSWORD='s3cret-pass' intakectl user create --email agent@example.com`,
	Args: cobra.NoArgs,
	RunE: runUserCreate,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Replace a login account's password",
	Args:  cobra.NoArgs,
	RunE:  runUserPasswd,
}

func init() {
	for _, c := range []*cobra.Command{userCreateCmd, userPasswdCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "Account email")
		c.Flags().StringVar(&userPassword, "password", "", "Account password (or set "+passwordEnv+")")
		_ = c.MarkFlagRequired("email")
	}
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userPasswdCmd)
}

// userInput resolves the password from flag or environment
func userInput() (*domain.UserInput, error) {
	password := userPassword
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if password == "" {
		return nil, fmt.Errorf("password required. Set --password or %s", passwordEnv)
	}
	return &domain.UserInput{Email: userEmail, Password: password}, nil
}

// withAuthService opens the credential store and runs fn with an auth service over it
func withAuthService(cmd *cobra.Command, fn func(*service.AuthService) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.NewSQLX(commandContext(cmd), cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := service.NewAuthService(cfg.JWT, pgrepo.NewUserRepository(db), redisrepo.NoopTokenStore{}, log)
	return fn(auth)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	input, err := userInput()
	if err != nil {
		return err
	}

	return withAuthService(cmd, func(auth *service.AuthService) error {
		user, err := auth.CreateUser(commandContext(cmd), input)
		if err != nil {
			return err
		}
		printf("created user %s (%s)", user.Email, user.ID)
		return nil
	})
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	input, err := userInput()
	if err != nil {
		return err
	}

	return withAuthService(cmd, func(auth *service.AuthService) error {
		if err := auth.SetPassword(commandContext(cmd), input); err != nil {
			return err
		}
		printf("password updated for %s", input.Email)
		return nil
	})
}
