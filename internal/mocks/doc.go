// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes one function field per interface method plus call
// tracking, so tests can script behaviour and then verify what was passed:
//
//	import "github.com/phrazzld/email-writer/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := &mocks.MockGenerator{
//	        GenerateFn: func(ctx context.Context, req domain.EmailRequest) (string, error) {
//	            return "Thanks, see you Thursday.", nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
