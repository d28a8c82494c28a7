package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/domain"
	"papatacos/internal/core/services"

	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("createowner", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Owner email")
	lastName := fs.String("last-name", "", "Owner last name")
	firstName := fs.String("first-name", "", "Owner first name (optional)")
	phone := fs.String("phone", "", "Owner phone (optional)")
	pinFlag := fs.String("pin", "", "PIN, 4 to 6 digits (optional, will prompt if omitted)")
	dbPath := fs.String("db", "", "SQLite database file (default: DB_DRIVER settings from the environment)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	if *email == "" {
		missing = append(missing, "email")
	}
	if *lastName == "" {
		missing = append(missing, "last-name")
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: createowner -email <email> -last-name <name> [-first-name <name>] [-phone <phone>] [-pin <pin>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	pin := *pinFlag
	if pin == "" {
		fmt.Fprint(stdout, "PIN: ")
		var err error
		pin, err = readPIN(stdin)
		if err != nil {
			return fmt.Errorf("failed to read PIN: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(pin) == "" {
		return fmt.Errorf("PIN cannot be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = *dbPath
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	authService := services.NewAuthService(repositories.NewStore(db), cfg)
	result, err := authService.SignUp(context.Background(), &services.SignUpInput{
		LastName:  *lastName,
		FirstName: *firstName,
		Phone:     *phone,
		Email:     *email,
		PIN:       pin,
		Role:      string(domain.RoleOwner),
	})
	if err != nil {
		if ve, ok := domain.IsValidation(err); ok {
			return fmt.Errorf("invalid %s: %s", ve.Field, ve.Message)
		}
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return fmt.Errorf("account %s already exists", *email)
		}
		return fmt.Errorf("failed to create owner: %w", err)
	}

	fmt.Fprintf(stdout, "Owner %s created successfully with ID %d\n", result.Profile.Email, result.Profile.ID)
	return nil
}

func readPIN(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePIN, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePIN), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
