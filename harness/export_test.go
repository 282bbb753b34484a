package harness

var PackagePath = packagePath
