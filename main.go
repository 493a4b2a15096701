// vitrine shows product images in the terminal: a large viewer with hover
// zoom above a thumbnail strip, or a swipeable single-image strip on narrow
// terminals.
//
// Images come from positional arguments (files, directories, URLs) or from a
// product stored in the catalog database.
package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/llehouerou/vitrine/internal/app"
	"github.com/llehouerou/vitrine/internal/catalog"
	"github.com/llehouerou/vitrine/internal/config"
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/logging"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
)

type options struct {
	configPath    string
	catalogPath   string
	product       string
	listProducts  bool
	addProduct    string
	removeProduct string
	title         string
	index         int
	breakpoint    int
	zoom          float64
	protocol      string
	debug         bool
}

// startupError is a failure before the UI starts, printed as a user-facing
// message.
type startupError struct {
	op  errmsg.Op
	arg string
	err error
}

func (e *startupError) Error() string {
	if e.arg != "" {
		return errmsg.FormatWith(e.op, e.arg, e.err)
	}
	return errmsg.Format(e.op, e.err)
}

func (e *startupError) Unwrap() error { return e.err }

func fail(op errmsg.Op, err error) error {
	return &startupError{op: op, err: err}
}

func failWith(op errmsg.Op, arg string, err error) error {
	return &startupError{op: op, arg: arg, err: err}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options

	flagSet := pflag.NewFlagSet("vitrine", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "extra config file (highest priority)")
	flagSet.StringVar(&opts.catalogPath, "catalog", "", "product catalog database")
	flagSet.StringVarP(&opts.product, "product", "p", "", "show the images of the product with this SKU")
	flagSet.BoolVar(&opts.listProducts, "list-products", false, "list catalog products and exit")
	flagSet.StringVar(&opts.addProduct, "add-product", "", "store the given images under this SKU and exit")
	flagSet.StringVar(&opts.removeProduct, "remove-product", "", "delete the product with this SKU and exit")
	flagSet.StringVarP(&opts.title, "title", "t", "", "gallery title")
	flagSet.IntVarP(&opts.index, "index", "i", 0, "initially active image (0-based)")
	flagSet.IntVar(&opts.breakpoint, "breakpoint", 0, "width in cells below which the mobile layout is used")
	flagSet.Float64Var(&opts.zoom, "zoom", 0, "hover magnification")
	flagSet.StringVar(&opts.protocol, "protocol", "", "image protocol: auto, kitty, sixel, blocks or none")
	flagSet.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fail(errmsg.OpConfigLoad, err)
	}
	applyFlags(cfg, flagSet, opts)

	if opts.listProducts {
		return listProducts(cfg)
	}
	if opts.removeProduct != "" {
		return removeProduct(cfg, opts.removeProduct)
	}

	refs, err := catalog.ResolveArgs(flagSet.Args())
	if err != nil {
		return fail(errmsg.OpMediaResolve, err)
	}

	if opts.addProduct != "" {
		return addProduct(cfg, opts, refs)
	}

	title := opts.title
	if opts.product != "" {
		p, err := loadProduct(cfg, opts.product)
		if err != nil {
			return err
		}
		refs = append(refs, p.Media...)
		if title == "" {
			title = p.Title
		}
	}

	return runGallery(cfg, opts, title, refs)
}

// applyFlags lets explicitly set flags override config values.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, opts options) {
	if flagSet.Changed("catalog") {
		cfg.Catalog = opts.catalogPath
	}
	if flagSet.Changed("breakpoint") {
		cfg.Breakpoint = opts.breakpoint
	}
	if flagSet.Changed("zoom") {
		cfg.Zoom.Magnification = opts.zoom
	}
	if flagSet.Changed("protocol") {
		cfg.ImageProtocol = opts.protocol
	}
}

func runGallery(cfg *config.Config, opts options, title string, refs []string) error {
	log, closer, err := logging.Open(cfg.GetLogFile(), opts.debug)
	if err != nil {
		return fail(errmsg.OpLogOpen, err)
	}
	defer closer.Close()

	proto := imgproto.Detect(cfg.GetImageProtocol())
	cache, err := imgproto.NewCache(cfg.CacheDir)
	if err != nil {
		// Frames are rescaled on every show without a cache.
		log.Warn("frame cache disabled", "error", err)
	}

	protoName := "none"
	if proto != nil {
		protoName = proto.Name()
	}
	log.Info("starting", "images", len(refs), "protocol", protoName, "cache", cache.Dir())

	zoomCfg := cfg.GetZoomConfig()
	thumbs := cfg.GetThumbnailConfig()

	m := app.New(app.Options{
		Title:         title,
		Images:        refs,
		InitialIndex:  opts.index,
		Breakpoint:    cfg.GetBreakpoint(),
		Magnification: zoomCfg.Magnification,
		FrameInterval: zoomCfg.FrameInterval(),
		ThumbWidth:    thumbs.Width,
		ThumbHeight:   thumbs.Height,
		Renderer:      imgproto.NewRenderer(proto, cache),
		Logger:        log,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fail(errmsg.OpInitialize, err)
	}
	return nil
}

func openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	c, err := catalog.Open(cfg.GetCatalogPath())
	if err != nil {
		return nil, failWith(errmsg.OpCatalogOpen, cfg.GetCatalogPath(), err)
	}
	return c, nil
}

func loadProduct(cfg *config.Config, sku string) (*catalog.Product, error) {
	c, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	p, err := c.Product(sku)
	if err != nil {
		return nil, failWith(errmsg.OpProductLoad, sku, err)
	}
	return p, nil
}

func addProduct(cfg *config.Config, opts options, refs []string) error {
	if len(refs) == 0 {
		return failWith(errmsg.OpProductSave, opts.addProduct, errors.New("no images given"))
	}

	c, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	p := catalog.Product{SKU: opts.addProduct, Title: opts.title, Media: refs}
	if err := c.SaveProduct(p); err != nil {
		return failWith(errmsg.OpProductSave, opts.addProduct, err)
	}
	fmt.Printf("Saved %s with %d images\n", opts.addProduct, len(refs))
	return nil
}

func removeProduct(cfg *config.Config, sku string) error {
	c, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.DeleteProduct(sku); err != nil {
		return failWith(errmsg.OpProductDelete, sku, err)
	}
	fmt.Printf("Removed %s\n", sku)
	return nil
}

func listProducts(cfg *config.Config) error {
	c, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	products, err := c.Products()
	if err != nil {
		return fail(errmsg.OpCatalogList, err)
	}
	if len(products) == 0 {
		fmt.Println("No products")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tTITLE\tIMAGES")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%d\n", p.SKU, p.Title, p.MediaCount)
	}
	return w.Flush()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vitrine shows product images in the terminal.

Usage:
  vitrine [flags] [image|directory|url ...]
  vitrine --product SKU
  vitrine --add-product SKU [--title TITLE] image|directory|url ...
  vitrine --remove-product SKU
  vitrine --list-products

Flags:
%s`, flagSet.FlagUsages())
}
