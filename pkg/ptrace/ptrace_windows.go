package ptrace

import "github.com/kusumi/fileobj/pkg/syserr"

const platform = "windows"

var unsupportedKind = syserr.ErrStructurallyUnsupported
