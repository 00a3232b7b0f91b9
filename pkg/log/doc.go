// Package log provides the logging abstraction used by frameweave components.
//
// The Logger interface can be implemented by any logging library. A zerolog
// adapter is provided for production use and a no-op logger for embedding and
// tests:
//
//	logger := log.NewZerologAdapter()
//	quiet := log.NewNoopLogger()
//
// Implement the interface to route pipeline logs into your own
// infrastructure:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field)  { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field)  { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
