/*

Serpent analyses DNA/RNA and amino acid data from FASTA files: it
re-encodes symbol streams into codon indices and amino acids, indexes
repeated substructure, and computes statistical and spectral
summaries.

The basic usage looks like this:

	serpent codons data.fasta

, this will print the codon frequency table of every sequence.

Other commands cover translation and peptide statistics (pep), codon
k-mer counting (seq), autocorrelation (ac), power spectra (fft),
count grids (hist), bitmap rendering (image) and plain encoding and
decoding (encode, decode):

	serpent -frame 1 -reverse ac -lags 512 data.fasta

To see all the options run:

	serpent help

*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"github.com/peterhil/serpent/checkpoint"
	"github.com/peterhil/serpent/codon"
	"github.com/peterhil/serpent/dsp"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("serpent")
var formatter = logging.MustStringFormatter(`%{message}`)

// Command-line flags and arguments.
var (
	app = kingpin.New("serpent", "DNA sequence encoding and statistics").Version(version)

	// encoding parameters
	gcodeID    = app.Flag("gcode", "NCBI genetic code id, standard by default").Default("1").Int()
	frame      = app.Flag("frame", "reading frame offset (0, 1 or 2)").Default("0").Int()
	reverse    = app.Flag("reverse", "analyse the reverse-complement strand").Bool()
	aminoInput = app.Flag("amino", "input is amino acid data (otherwise detected from the .faa extension)").Bool()
	policyName = app.Flag("policy", "ambiguity policy for numeric encoding (zero, skip or expand)").Default("zero").String()

	// output
	outF     = app.Flag("out", "write results to a file instead of stdout").String()
	plotF    = app.Flag("plot", "save a plot (ac, fft and hist commands)").String()
	jsonF    = app.Flag("json", "write run summary in JSON format").String()
	outLogF  = app.Flag("logfile", "write log to a file").String()
	logLevel = app.Flag("log", "set loglevel "+
		"(critical, error, warning, notice, info, debug)").Default("notice").String()

	// technical
	nThreads    = app.Flag("nt", "number of threads to use").Int()
	checkpointF = app.Flag("checkpoint", "checkpoint database for resuming batch runs").String()

	cmdCodons   = app.Command("codons", "codon frequency table with GC content and entropy")
	codonsFiles = cmdCodons.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdPep    = app.Command("pep", "peptide translation and peptide frequency table")
	pepLength = cmdPep.Flag("n", "peptide word length").Default("1").Int()
	pepORF    = cmdPep.Flag("orf", "stop translation at the first stop codon").Bool()
	pepFiles  = cmdPep.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdSeq    = app.Command("seq", "corpus-wide codon k-mer counts via a trie index")
	seqLength = cmdSeq.Flag("n", "number of codons per k-mer").Default("4").Int()
	seqTop    = cmdSeq.Flag("top", "number of most frequent k-mers to report").Default("32").Int()
	seqPrefix = cmdSeq.Flag("prefix", "also report the aggregate count for this prefix").String()
	seqFiles  = cmdSeq.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdAC   = app.Command("ac", "autocorrelogram of the encoded sequence")
	acLags  = cmdAC.Flag("lags", "maximum lag").Default("256").Int()
	acLimit = cmdAC.Flag("limit", "peak report threshold").Default("0.05").Float64()
	acFiles = cmdAC.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdFFT   = app.Command("fft", "power spectrum of the encoded sequence")
	fftFiles = cmdFFT.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdHist   = app.Command("hist", "codon or amino acid count grid")
	histFiles = cmdHist.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdImage   = app.Command("image", "render the codon index stream as an RGB image")
	imageWidth = cmdImage.Flag("width", "image width in pixels").Default("64").Int()
	imagePNG   = cmdImage.Flag("png", "output image file").Default("serpent.png").String()
	imageFiles = cmdImage.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdEncode   = app.Command("encode", "encode sequences into codon indices")
	encodeFiles = cmdEncode.Arg("fasta", "FASTA input files").Required().ExistingFiles()

	cmdDecode   = app.Command("decode", "encode and decode back to a normalized sequence")
	decodeFiles = cmdDecode.Arg("fasta", "FASTA input files").Required().ExistingFiles()
)

// summary is output in JSON format at the end of the run.
type summary struct {
	Version     string   `json:"version"`
	CommandLine []string `json:"commandLine"`
	Command     string   `json:"command"`
	NThreads    int      `json:"nThreads"`
	GCode       int      `json:"gCode"`
	Frame       int      `json:"frame"`
	Strand      string   `json:"strand"`
	Policy      string   `json:"policy"`
	Files       int      `json:"files"`
	Sequences   int      `json:"sequences"`
	Codons      int      `json:"codons"`
	Ambiguous   int      `json:"ambiguous"`
	Dropped     int      `json:"dropped"`
	Time        float64  `json:"time"`
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "serpent")
	logging.SetLevel(level, "checkpoint")

	log.Info(version)
	log.Info("Command line:", os.Args)

	if *nThreads > 0 {
		runtime.GOMAXPROCS(*nThreads)
	}
	effectiveNThreads := runtime.GOMAXPROCS(0)
	log.Infof("Using threads: %d.", effectiveNThreads)

	gcode, err := codon.GetGeneticCode(*gcodeID)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Genetic code: %d, %s", gcode.ID, gcode.Name)

	policy, err := dsp.ParsePolicy(*policyName)
	if err != nil {
		log.Fatal(err)
	}

	var store *checkpoint.Store
	if *checkpointF != "" {
		store, err = checkpoint.Open(*checkpointF)
		if err != nil {
			log.Fatal("Error opening checkpoint database:", err)
		}
		defer store.Close()
	}

	out := os.Stdout
	if *outF != "" {
		out, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating output file:", err)
		}
		defer out.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()

	s := &settings{
		command: command,
		gcode:   gcode,
		frame:   *frame,
		strand:  codon.Forward,
		policy:  policy,
		store:   store,
		out:     out,
	}
	if *reverse {
		s.strand = codon.Reverse
	}

	sum, err := s.run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	sum.Version = version
	sum.CommandLine = os.Args
	sum.Command = command
	sum.NThreads = effectiveNThreads
	sum.GCode = gcode.ID
	sum.Frame = s.frame
	sum.Strand = s.strand.String()
	sum.Policy = policy.String()
	sum.Time = time.Since(startTime).Seconds()

	log.Noticef("Running time: %v", time.Since(startTime))

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(sum)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
