// Package pipeline implements the LinkedIn content generation pipeline.
//
// A generation run moves a single shared state through five sequential
// stages: research, draft, image prompt, review, and finalize. Each stage
// reads what earlier stages produced, calls the configured chat client,
// and merges its output back into the state. Stages are individually
// fault-isolated. When a stage fails, a deterministic fallback fills in
// its output and the run continues, so one flaky LLM call never sinks a
// whole run.
//
// The review stage applies a deterministic quality gate before accepting
// refined content. Finalization assembles the accumulated state into a
// Result with hashtags, an image prompt, and run metadata.
//
// Use a Generator for single runs and Variations for generating several
// candidate posts concurrently:
//
//	gen := pipeline.NewGenerator(client)
//	result, err := gen.Generate(ctx, pipeline.Request{
//		Topic:       "warehouse safety",
//		CompanyInfo: "Acme Corp builds fencing for warehouses",
//		Style:       pipeline.StyleProfessional,
//	})
package pipeline
