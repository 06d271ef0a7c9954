// Package tui provides the interactive terminal wizard.
//
// File organization:
//   - app.go: Entry point (Run function)
//   - model.go: Model struct and message types
//   - form.go: Request form inputs kept in sync with the wizard
//   - tree.go: Flattened response tree for path selection
//   - update.go: Event handling and wizard commands
//   - keys.go: Keyboard input handling per step
//   - view.go: Rendering
//   - styles.go: Visual styling
package tui
