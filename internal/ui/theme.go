package ui

const themeStorageKey = "datasync-console-theme"

// themeInitScript runs in <head> so the stored mode applies before paint.
const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function normalize(mode){
    return mode==='light'||mode==='dark'?mode:'auto';
  }
  function apply(mode){
    var selected=normalize(mode);
    var resolved=selected==='auto'?(media.matches?'dark':'light'):selected;
    root.setAttribute('data-color-mode',selected);
    root.setAttribute('data-theme',resolved);
  }
  var stored='auto';
  try { stored=normalize(localStorage.getItem('` + themeStorageKey + `')||'auto'); } catch (_) {}
  apply(stored);
  window.__consoleThemeApply=apply;
  media.addEventListener&&media.addEventListener('change',function(){
    if(root.getAttribute('data-color-mode')==='auto'){ apply('auto'); }
  });
})();`

// themeToggleScript wires the topbar button and the mobile nav toggle.
const themeToggleScript = `(function(){
  var root=document.documentElement;
  var toggle=document.getElementById('theme-toggle');
  if(toggle){
    toggle.addEventListener('click',function(){
      var next=root.getAttribute('data-theme')==='dark'?'light':'dark';
      (window.__consoleThemeApply||function(){})(next);
      try { localStorage.setItem('` + themeStorageKey + `', next); } catch (_) {}
    });
  }
  var shell=document.querySelector('.app-shell');
  var navToggle=document.getElementById('nav-toggle');
  if(shell&&navToggle){
    navToggle.addEventListener('click',function(){
      shell.classList.toggle('nav-open');
      navToggle.setAttribute('aria-expanded', shell.classList.contains('nav-open')?'true':'false');
    });
  }
  if(window.lucide){ window.lucide.createIcons(); }
})();`
