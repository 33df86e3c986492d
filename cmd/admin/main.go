// Command admin is the operator CLI: tenant provisioning, user creation, and
// demo seeding. It works directly against the database and never goes through
// the HTTP API; unscoped access runs through the audited admin layer.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/app"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/config"
	internaldb "github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "admin",
		Short:        "HotelOS operator CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("db", "", "path to the SQLite database (defaults to DB_PATH)")
	root.AddCommand(newProvisionTenantCmd(), newCreateUserCmd(), newSeedDemoCmd())
	return root
}

// openApp loads config, opens the database, and wires the application.
// The returned cleanup closes the pools.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	applyDBOverride(cfg, cmd.Flags())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.DBPath, 2)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	}
	if err := internaldb.RunMigrations(writeDB); err != nil {
		cleanup()
		return nil, nil, err
	}
	return app.New(app.Deps{Cfg: cfg, WriteDB: writeDB, ReadDB: readDB, Logger: logger}), cleanup, nil
}

// applyDBOverride lets the --db flag win over DB_PATH.
func applyDBOverride(cfg *config.Config, flags *pflag.FlagSet) {
	if path, _ := flags.GetString("db"); path != "" {
		cfg.DBPath = path
	}
}

func newProvisionTenantCmd() *cobra.Command {
	var name, billing string
	cmd := &cobra.Command{
		Use:   "provision-tenant",
		Short: "Provision a new tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := domain.CreateTenantRequest{Name: name, BillingStatus: billing}
			if err := req.Validate(); err != nil {
				return err
			}
			a, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			t := &domain.Tenant{
				ID:            domain.NewID(),
				Name:          req.Name,
				BillingStatus: req.BillingStatus,
			}
			ctx := domain.WithProvisioning(cmd.Context())
			if err := a.Tenants.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("tenant %s provisioned (%s)\n", t.ID, t.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "tenant name (required)")
	cmd.Flags().StringVar(&billing, "billing-status", "active", "billing status")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCreateUserCmd() *cobra.Command {
	var tenantID, email, displayName, role, password string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a staff user within a tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := domain.CreateUserRequest{
				Email:       email,
				DisplayName: displayName,
				Role:        domain.Role(role),
				Password:    password,
			}
			if err := req.Validate(); err != nil {
				return err
			}
			a, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := a.Tenants.Get(domain.WithProvisioning(cmd.Context()), tenantID); err != nil {
				return err
			}
			hash, err := a.Services.Credentials.HashPassword(req.Password)
			if err != nil {
				return err
			}
			u := &domain.User{
				ID:             domain.NewID(),
				TenantID:       tenantID,
				Email:          req.Email,
				DisplayName:    req.DisplayName,
				Role:           req.Role,
				CredentialHash: hash,
				Active:         true,
				CreatedAt:      time.Now().UTC(),
			}
			ctx := domain.WithActor(cmd.Context(), domain.Actor{TenantID: tenantID, UserID: "admin-cli"})
			if err := a.Users.Create(ctx, a.DAL, u); err != nil {
				return err
			}
			fmt.Printf("user %s created (%s, %s)\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id (required)")
	cmd.Flags().StringVar(&email, "email", "", "email (required)")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "staff", "role (owner/manager/reception/accountant/housekeeping/staff)")
	cmd.Flags().StringVar(&password, "password", "", "initial password (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Seed a demo tenant with staff, a booking, an invoice, and a shift",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.SeedDemo(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("tenant:  %s\nbooking: %s\ninvoice: %s\nshift:   %s\n",
				res.TenantID, res.BookingID, res.InvoiceID, res.ShiftID)
			for email, pass := range res.Logins {
				fmt.Printf("login:   %s / %s\n", email, pass)
			}
			return nil
		},
	}
}
