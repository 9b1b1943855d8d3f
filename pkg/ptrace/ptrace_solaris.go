package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

// Process control goes through /proc here, there is no ptrace.
const platform = "illumos"

var unsupportedKind = syserr.ErrStructurallyUnsupported
