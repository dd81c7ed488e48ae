// Package logging builds the structured logger handed to the test runner.
//
// There is no process-wide logger: main constructs one with New and passes
// it down explicitly. Records go through log/slog and are rendered by
// charmbracelet/log, which prints multi-line values such as captured adb
// output as indented blocks instead of escaping them.
//
//	logger := logging.New(os.Stderr, verbose)
//	logger.Info("Running the test ...")
package logging
