package store

import "fmt"

// seedIfEmpty populates the reference tables with the bank's products and
// branches on first run. Seeding is per-table so a partially seeded
// database heals on the next open.
func (s *SQLite) seedIfEmpty() error {
	n, err := s.count("accounts")
	if err != nil {
		return err
	}
	if n == 0 {
		s.log.Info().Msg("seeding accounts table")
		for _, a := range [][4]any{
			{"Savings", "Basic savings account", 500.0, 1.5},
			{"Checking", "Everyday checking account", 1000.0, 0.1},
			{"Fixed Deposit", "Term deposit with fixed interest", 10000.0, 3.5},
			{"Joint", "Account shared between multiple people", 2000.0, 0.5},
		} {
			if _, err := s.db.Exec(
				`INSERT INTO accounts (type, description, min_balance, interest_rate) VALUES (?, ?, ?, ?)`,
				a[0], a[1], a[2], a[3],
			); err != nil {
				return fmt.Errorf("seed accounts: %w", err)
			}
		}
	}

	n, err = s.count("loans")
	if err != nil {
		return err
	}
	if n == 0 {
		s.log.Info().Msg("seeding loans table")
		for _, l := range [][6]any{
			{"Personal", "Unsecured personal loan", 7.5, 50000.0, 1, 5},
			{"Home", "Mortgage for property purchase", 4.5, 2000000.0, 5, 30},
			{"Auto", "Vehicle financing", 5.0, 500000.0, 1, 7},
			{"Education", "Student loan for education", 6.0, 1000000.0, 1, 10},
		} {
			if _, err := s.db.Exec(
				`INSERT INTO loans (type, description, interest_rate, max_amount, min_term, max_term) VALUES (?, ?, ?, ?, ?, ?)`,
				l[0], l[1], l[2], l[3], l[4], l[5],
			); err != nil {
				return fmt.Errorf("seed loans: %w", err)
			}
		}
	}

	n, err = s.count("branches")
	if err != nil {
		return err
	}
	if n == 0 {
		s.log.Info().Msg("seeding branches table")
		for _, b := range [][3]any{
			{"Colombo Main Branch", 101, "123 Galle Road, Colombo 03"},
			{"Kandy City Branch", 102, "45 Dalada Veediya, Kandy"},
			{"Galle Branch", 103, "78 Matara Road, Galle"},
			{"Jaffna Branch", 104, "12 Kankesanthurai Road, Jaffna"},
			{"Kurunegala Branch", 105, "34 Colombo Road, Kurunegala"},
			{"Negombo Branch", 106, "67 Chilaw Road, Negombo"},
			{"Anuradhapura Branch", 107, "23 Mihintale Road, Anuradhapura"},
			{"Ratnapura Branch", 108, "56 Gem Street, Ratnapura"},
			{"Matara Branch", 109, "89 Beach Road, Matara"},
			{"Batticaloa Branch", 110, "14 Trincomalee Road, Batticaloa"},
		} {
			if _, err := s.db.Exec(
				`INSERT INTO branches (branch_name, branch_code, address) VALUES (?, ?, ?)`,
				b[0], b[1], b[2],
			); err != nil {
				return fmt.Errorf("seed branches: %w", err)
			}
		}
	}
	return nil
}

func (s *SQLite) count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
