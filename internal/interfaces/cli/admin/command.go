package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	userDomain "github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/auth"
	"github.com/reque-io/reque/internal/infrastructure/config"
	"github.com/reque-io/reque/internal/infrastructure/database"
	"github.com/reque-io/reque/internal/infrastructure/repository"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/logger"
)

var (
	env      string
	email    string
	name     string
	password string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative tools",
		Long:  `Manage accounts outside the HTTP API, for bootstrapping and recovery.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Long:  `Create an active admin account. The password is taken from --password or prompted interactively.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the admin account (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name of the admin account (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()

	plain := password
	if plain == "" {
		plain, err = promptPassword()
		if err != nil {
			return err
		}
	}

	emailVO, err := vo.NewEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	nameVO, err := vo.NewName(name)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	passwordVO, err := vo.NewPassword(plain)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	userRepo := repository.NewUserRepository(database.Get(), log)

	ctx := context.Background()
	exists, err := userRepo.ExistsByEmail(ctx, emailVO.String())
	if err != nil {
		return fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return fmt.Errorf("an account with email %s already exists", emailVO.String())
	}

	// Admin accounts created from the CLI skip email verification.
	account, err := userDomain.NewVerifiedUser(emailVO, nameVO, authorization.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to build admin account: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	if err := account.SetPassword(passwordVO, hasher); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	if err := userRepo.Create(ctx, account); err != nil {
		log.Errorw("failed to create admin account", "error", err)
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Infow("admin account created", "email", emailVO.String(), "uuid", account.UUID())
	fmt.Printf("✅ Admin account '%s' created successfully\n", emailVO.String())

	return nil
}

// promptPassword reads the password twice with echo disabled.
func promptPassword() (string, error) {
	stdinFd := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFd) {
		return "", fmt.Errorf("stdin is not a terminal; pass --password instead")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(first), nil
}
