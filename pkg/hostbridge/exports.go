package hostbridge

/*
#include <stdlib.h>
#include <stdio.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"
)

// called by the host to get the version of the library
//
//export SGExtensionVersion
func SGExtensionVersion(output *C.char, outputsize C.size_t) {
	replyToSyncCall(Version(), output, outputsize)
}

// called by the host with a single "command|arg|arg" string
//
//export SGExtension
func SGExtension(output *C.char, outputsize C.size_t, input *C.char) {
	replyToSyncCall(CallString(C.GoString(input)), output, outputsize)
}

// called by the host with a command and an argument array
//
//export SGExtensionArgs
func SGExtensionArgs(output *C.char, outputsize C.size_t, input *C.char, argv **C.char, argc C.int) {
	command := C.GoString(input)
	args := parseArgsFromC(argv, argc)
	replyToSyncCall(Call(command, args), output, outputsize)
}

// parseArgsFromC converts C argv array to Go string slice
func parseArgsFromC(argv **C.char, argc C.int) []string {
	if argc <= 0 || argv == nil {
		return nil
	}
	ptrs := unsafe.Slice(argv, int(argc))
	data := make([]string, 0, len(ptrs))
	for _, p := range ptrs {
		data = append(data, C.GoString(p))
	}
	return data
}

// replyToSyncCall copies response into the host's buffer, truncating to
// outputsize and always leaving it NUL terminated.
func replyToSyncCall(response string, output *C.char, outputsize C.size_t) {
	if outputsize == 0 {
		return
	}
	result := C.CString(response)
	defer C.free(unsafe.Pointer(result))
	var size = C.strlen(result) + 1
	if size > outputsize {
		size = outputsize
	}
	C.memmove(unsafe.Pointer(output), unsafe.Pointer(result), size)
	*(*C.char)(unsafe.Add(unsafe.Pointer(output), size-1)) = 0
}
