// Package types defines the shared vocabulary of regkit: registry value
// kinds, access rights, predefined root names, native status codes and the
// typed errors every layer returns.
//
// Design goals:
//   - Numeric values align with the Windows definitions so they can be passed
//     to the host API without translation.
//   - Typed errors with stable categories (path/root/exists/native/...), so
//     callers branch with errors.Is and errors.As rather than on text.
//
// This package has no dependencies beyond the standard library.
package types
