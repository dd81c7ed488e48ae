// Package config loads the optional pagecycler configuration file.
//
// The file is YAML and only supplies defaults: any flag given on the command
// line wins over the file. Lookup order is
//
//  1. the path given with --config (it must exist)
//  2. .pagecycler.yaml in the current directory
//  3. pagecycler/config.yaml under the XDG config home
//
// Example:
//
//	adb: /opt/android-sdk/platform-tools/adb
//	adb_options: -s emulator-5554
//	results_directory: out/page-cycler
//	time_out_ms: "60000"
//	drawtime: true
package config
