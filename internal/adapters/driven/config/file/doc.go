// Package file loads the JSON credentials file the tool needs to talk to
// Instapaper and Google. Secret values can be overridden through
// environment variables of the same name, so the file itself may omit
// them entirely.
package file
