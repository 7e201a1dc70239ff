// Package sim provides an in-process application backend driven by an
// explicit screen state machine. Screens, their buttons and the transition
// table come from a YAML model; the built-in model has three screens (Main,
// ScreenA, ScreenB) wired the way the default walkthrough expects.
//
// Importing the package registers the "sim" backend with internal/platform.
package sim
