package config

// DefaultDatabasePath is the default path for the tracker database.
const DefaultDatabasePath = "./book-tracker.db"
