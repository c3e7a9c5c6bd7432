// Package main hosts the xmlcreator entrypoint.
//
// The command reads the spreadsheet configuration, writes an asset descriptor
// for every finished video row that does not have one yet, and uploads the new
// descriptors to the delivery server. It is meant to be run repeatedly, for
// example from cron; rows that already have a descriptor are left alone.
package main
