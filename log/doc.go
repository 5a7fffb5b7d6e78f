// Package log provides the leveled logging interface used by the circuit
// packages.
//
// The package-level default logger only emits warnings and errors, so a
// library consumer sees nothing unless something goes wrong. Solving
// activity can be made visible by lowering the level:
//
//	log.SetLogLevel(log.LogLevelDebug)
//
// A custom Logger implementation, or the golog wrapper, can be installed
// globally with SetDefaultLogger or per circuit with circuit.WithLogger:
//
//	glogger := golog.New()
//	log.SetDefaultLogger(log.NewGologLogger(glogger))
package log
