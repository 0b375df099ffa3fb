package cli

var RunWithWriter = run

var WriteFile = writeFile
