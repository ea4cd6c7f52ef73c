// Package postpilot provides the shared types for the postpilot content
// generation service: chat messages, request options, and the categorized
// error taxonomy used across providers and the generation pipeline.
//
// The service generates LinkedIn posts through a multi-stage LLM pipeline
// (research, draft, image prompt, review, finalize), routes the result
// through a Telegram approval step, and publishes approved posts to
// LinkedIn.
//
// # Package Map
//
//   - [github.com/spetersoncode/postpilot/pipeline]: the generation pipeline
//   - [github.com/spetersoncode/postpilot/chat]: the canonical chat client interface
//   - [github.com/spetersoncode/postpilot/client]: provider-backed chat client
//   - [github.com/spetersoncode/postpilot/provider/...]: SDK adapters
//   - [github.com/spetersoncode/postpilot/images]: image candidate generation
//   - [github.com/spetersoncode/postpilot/linkedin]: publishing client
//   - [github.com/spetersoncode/postpilot/telegram]: approval bot
//   - [github.com/spetersoncode/postpilot/store]: content lifecycle store
//   - [github.com/spetersoncode/postpilot/server]: HTTP API
//
// # Basic Usage
//
// Build a chat client and run the pipeline:
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: postpilot.ProviderOpenAI,
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen := pipeline.NewGenerator(c)
//	result, err := gen.Generate(ctx, pipeline.Request{
//	    CompanyInfo: "Acme Corp builds fencing for warehouses",
//	    Topic:       "warehouse safety",
//	    Style:       pipeline.StyleProfessional,
//	})
package postpilot
