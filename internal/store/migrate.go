package store

import (
	"database/sql"
	"strconv"
)

const schemaVersion = 1

func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}
	if version < schemaVersion {
		if err := setUserVersion(db, schemaVersion); err != nil {
			return err
		}
	}
	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	// PRAGMA does not take bound parameters.
	_, err := db.Exec("PRAGMA user_version = " + strconv.Itoa(version) + ";")
	return err
}
