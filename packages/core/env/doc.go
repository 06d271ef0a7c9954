// Package env handles environment variables and placeholder resolution for pathpick.
//
// It provides functionality for:
//   - Loading .env files
//   - Placeholder interpolation using {{variable}} and {{$ENV_VAR}} syntax
//   - Built-in function evaluation ({{uuid()}}, {{timestamp()}}, {{date(layout)}})
package env
