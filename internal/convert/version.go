package convert

// Version is the prov2ld tool version, recorded in journal entries.
const Version = "0.1.0"
