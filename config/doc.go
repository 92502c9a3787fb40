// Package config loads project declarations from YAML.
//
// A project declares its namespace, the strategies it defines, and the
// datasets it ingests:
//
//	namespace: acme
//	project: handbook
//	rag:
//	  strategies:
//	    - name: legacy_pdf
//	      parser: pdf
//	      extractors: [file-info, keywords]
//	      chunker: token
//	      embedder: openai
//	      store: badger
//	datasets:
//	  - name: onboarding
//	    rag_strategy: legacy_pdf
//	    files:
//	      - scans/welcome.pdf
//	      - path: guides/setup.md
//	        rag_strategy: legacy_pdf
//	  - name: notes
//	    files:
//	      - daily/standup.txt
//
// A dataset without rag_strategy uses the built-in universal strategy,
// as does any file without its own override. File entries accept both
// a bare path and a mapping with a per-file rag_strategy.
package config
