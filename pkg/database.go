package sndisplay

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// LoadCablingFromDB reads the calorimeter cabling valid for a run.
func LoadCablingFromDB(db *sqlx.DB, runNumber int) (*CablingTable, error) {
	query := "SELECT Crate, Board, Channel, OmNum FROM CaloCabling WHERE MinRun <= %d and MaxRun >= %d ORDER BY OmNum"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Calorimeter cabling read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	entries := make([]CablingEntry, 0)
	for rows.Next() {
		result := CablingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		entries = append(entries, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return NewCablingTable(entries)
}
